package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/inventory/pkg/db"
	"github.com/Skotchmaster/inventory/services/inventory/internal/models"
	"github.com/Skotchmaster/inventory/services/inventory/internal/transport"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func ptr[T any](v T) *T { return &v }

func TestListItems_EmptyAndOrdered(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	items, err := r.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for _, name := range []string{"first", "second", "third"} {
		_, err := r.CreateItem(ctx, &models.Item{Name: name, Quantity: 1, Price: 1.5})
		require.NoError(t, err)
	}

	items, err = r.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Name)
	assert.Equal(t, "third", items[2].Name)
}

func TestCreateItem_AssignsID(t *testing.T) {
	r := newTestRepo(t)

	item, err := r.CreateItem(context.Background(), &models.Item{Name: "bolt", Quantity: 10, Price: 0.25})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, item.ID)

	got, err := r.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "bolt", got.Name)
	assert.Equal(t, 10, got.Quantity)
	assert.InDelta(t, 0.25, got.Price, 1e-9)
}

func TestPatchItem_Partial(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	item, err := r.CreateItem(ctx, &models.Item{Name: "nut", Quantity: 3, Price: 2})
	require.NoError(t, err)

	patched, err := r.PatchItem(ctx, transport.PatchItemRequest{Quantity: ptr(0)}, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "nut", patched.Name)
	assert.Equal(t, 0, patched.Quantity)
	assert.InDelta(t, 2.0, patched.Price, 1e-9)

	got, err := r.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestPatchItem_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.PatchItem(context.Background(), transport.PatchItemRequest{Name: ptr("x")}, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteItem(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	item, err := r.CreateItem(ctx, &models.Item{Name: "washer"})
	require.NoError(t, err)

	require.NoError(t, r.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, r.DeleteItem(ctx, item.ID), gorm.ErrRecordNotFound)

	items, err := r.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
