package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/pkg/errors"
)

func TestMemoryRegistry_ReplaceAllAndList(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	err := reg.ReplaceAll(ctx, []entities.Member{
		{ID: "m-1", FullName: "Adaeze Okafor"},
		{ID: "m-2", FullName: "Jane Doe"},
	})
	require.NoError(t, err)

	members, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "m-1", members[0].ID)

	count, err := reg.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryRegistry_ReplaceAllSwapsRoster(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	require.NoError(t, reg.ReplaceAll(ctx, []entities.Member{{ID: "m-1"}}))
	require.NoError(t, reg.ReplaceAll(ctx, []entities.Member{{ID: "m-2"}}))

	_, err := reg.GetByID(ctx, "m-1")
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))

	member, err := reg.GetByID(ctx, "m-2")
	require.NoError(t, err)
	assert.Equal(t, "m-2", member.ID)
}

func TestMemoryRegistry_GetByIDUnknown(t *testing.T) {
	reg := NewMemoryRegistry()

	_, err := reg.GetByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestMemoryRegistry_ListReturnsCopy(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()
	require.NoError(t, reg.ReplaceAll(ctx, []entities.Member{{ID: "m-1", FullName: "Jane Doe"}}))

	members, err := reg.List(ctx)
	require.NoError(t, err)
	members[0].FullName = "Mutated"

	again, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again[0].FullName)
}

func TestMemoryRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = reg.ReplaceAll(ctx, []entities.Member{{ID: "m-1"}})
		}()
		go func() {
			defer wg.Done()
			_, _ = reg.List(ctx)
		}()
	}
	wg.Wait()

	count, err := reg.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
