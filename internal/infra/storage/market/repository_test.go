package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/storagetest"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRepository_Markets(t *testing.T) {
	env := storagetest.New(t)
	repo := NewRepository(env.DB, env.Builder, storagetest.Namespace)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Market{ID: "market2", City: "台中市", Name: "向上市場", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Market{ID: "market1", City: "彰化縣", Name: "和美市場", CreatedAt: now, UpdatedAt: now}))
	// дубликаты пары (город, название) допустимы
	require.NoError(t, repo.Create(ctx, &domain.Market{ID: "market9", City: "彰化縣", Name: "和美市場", CreatedAt: now, UpdatedAt: now}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "market2", list[0].ID)

	found, err := repo.FindByName(ctx, "和美市場", "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindByName(ctx, "和美市場", "台中市")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.Upsert(ctx, &domain.Market{ID: "market1", City: "彰化縣", Name: "和美新市場", CreatedAt: now, UpdatedAt: now}))
	got, err := repo.GetByID(ctx, "market1")
	require.NoError(t, err)
	assert.Equal(t, "和美新市場", got.Name)

	got.City = "台中市"
	require.NoError(t, repo.Update(ctx, got))

	require.NoError(t, repo.Delete(ctx, "market9"))
	_, err = repo.GetByID(ctx, "market9")
	assert.ErrorIs(t, err, ErrMarketNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Market{ID: "market9"}), ErrMarketNotFound)
}
