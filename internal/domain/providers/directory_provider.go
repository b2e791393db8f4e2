package providers

import (
	"context"
	"errors"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// ErrDirectoryUnauthorized indicates the employee directory rejected our credentials
var ErrDirectoryUnauthorized = errors.New("employee directory unauthorized")

// DirectoryProvider fetches the corporate employee directory
type DirectoryProvider interface {
	FetchAllEmployees(ctx context.Context) ([]entities.RemoteEmployee, error)
}
