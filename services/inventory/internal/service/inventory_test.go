package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/inventory/pkg/db"
	"github.com/Skotchmaster/inventory/services/inventory/internal/models"
	"github.com/Skotchmaster/inventory/services/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/services/inventory/internal/search"
	"github.com/Skotchmaster/inventory/services/inventory/internal/transport"
)

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.(map[string]any)["type"].(string))
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[string]models.Item
	failing bool
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]models.Item{}} }

func (f *fakeIndex) IndexItem(ctx context.Context, item models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("index down")
	}
	f.docs[item.ID.String()] = item
	return nil
}

func (f *fakeIndex) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Item
	for _, it := range f.docs {
		if it.Name == query {
			out = append(out, it)
		}
	}
	return int64(len(out)), out, nil
}

func newTestService(t *testing.T) (*InventoryService, *recordingPublisher, *fakeIndex) {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))

	pub := &recordingPublisher{}
	idx := newFakeIndex()
	return &InventoryService{Repo: r, Events: pub, Search: idx}, pub, idx
}

func TestCreateItem(t *testing.T) {
	svc, pub, idx := newTestService(t)

	item, err := svc.CreateItem(context.Background(), transport.CreateItemRequest{Name: "  bolt ", Quantity: 5, Price: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "bolt", item.Name)
	assert.Equal(t, []string{"item_created"}, pub.types)
	assert.Contains(t, idx.docs, item.ID.String())
}

func TestCreateItem_BlankName(t *testing.T) {
	svc, pub, _ := newTestService(t)

	_, err := svc.CreateItem(context.Background(), transport.CreateItemRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, pub.types)
}

func TestCreateItem_SideEffectFailuresAreNotSurfaced(t *testing.T) {
	svc, pub, idx := newTestService(t)
	pub.err = errors.New("broker down")
	idx.failing = true

	item, err := svc.CreateItem(context.Background(), transport.CreateItemRequest{Name: "bolt"})
	require.NoError(t, err)

	items, err := svc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
}

func TestPatchItem(t *testing.T) {
	svc, pub, idx := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, transport.CreateItemRequest{Name: "bolt", Quantity: 1, Price: 1})
	require.NoError(t, err)

	price := 2.5
	patched, err := svc.PatchItem(ctx, transport.PatchItemRequest{Price: &price}, item.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, patched.Price, 1e-9)
	assert.Equal(t, []string{"item_created", "item_updated"}, pub.types)
	assert.InDelta(t, 2.5, idx.docs[item.ID.String()].Price, 1e-9)

	blank := " "
	_, err = svc.PatchItem(ctx, transport.PatchItemRequest{Name: &blank}, item.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PatchItem(ctx, transport.PatchItemRequest{Price: &price}, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem(t *testing.T) {
	svc, pub, idx := newTestService(t)
	ctx := context.Background()
	item, err := svc.CreateItem(ctx, transport.CreateItemRequest{Name: "bolt"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	assert.Equal(t, []string{"item_created", "item_deleted"}, pub.types)
	assert.NotContains(t, idx.docs, item.ID.String())

	assert.ErrorIs(t, svc.DeleteItem(ctx, item.ID), ErrNotFound)
}

func TestSearchItems(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateItem(ctx, transport.CreateItemRequest{Name: "bolt"})
	require.NoError(t, err)

	total, items, err := svc.SearchItems(ctx, "bolt", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)

	_, _, err = svc.SearchItems(ctx, " ", 0, 10)
	assert.ErrorIs(t, err, ErrValidation)

	svc.Search = search.Nop{}
	_, _, err = svc.SearchItems(ctx, "bolt", 0, 10)
	assert.ErrorIs(t, err, search.ErrDisabled)
}
