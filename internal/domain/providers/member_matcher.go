package providers

import "github.com/synchealth/wellness-backend/internal/domain/entities"

// MemberMatcher resolves an employee name extracted from an AI response
// to a registered member. Returns nil when no member qualifies.
type MemberMatcher interface {
	Match(name string, members []entities.Member) *entities.Member
}
