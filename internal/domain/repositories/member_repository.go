package repositories

import (
	"context"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// MemberRepository stores derived member records. The registry is
// replaced wholesale by each import or directory sync; records are
// never mutated in place.
type MemberRepository interface {
	// ReplaceAll atomically swaps the registry contents for the given batch
	ReplaceAll(ctx context.Context, members []entities.Member) error

	// List returns all registered members in registration order
	List(ctx context.Context) ([]entities.Member, error)

	// GetByID returns the member with the given id
	GetByID(ctx context.Context, id string) (*entities.Member, error)

	// Count returns the number of registered members
	Count(ctx context.Context) (int, error)
}
