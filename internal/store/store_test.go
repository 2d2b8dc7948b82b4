package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
items:
  - id: bolt
    name: Bolt
    max_stack: 5
  - id: plate
    name: Plate
    max_stack: 1
`

func setup(t *testing.T) (*store.Store, *item.Catalog, string) {
	t.Helper()
	c, err := item.ParseCatalog([]byte(catalogYAML))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "save", "game.db")
	s, err := store.Open(context.Background(), path, c, nil)
	require.NoError(t, err)
	return s, c, path
}

func lookup(t *testing.T, c *item.Catalog, id string) *item.Item {
	t.Helper()
	it, err := c.Lookup(id)
	require.NoError(t, err)
	return it
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, c, path := setup(t)
	bolt, plate := lookup(t, c, "bolt"), lookup(t, c, "plate")

	inv := inventory.New("shelf", 3, inventory.WithOutputSlot(2))
	inv.Set(0, item.NewStack(bolt, 4))
	inv.Set(2, item.NewStack(plate, 1))
	require.NoError(t, s.SaveInventory(ctx, inv))

	// Saving again replaces the old rows.
	inv.Set(0, item.Empty())
	inv.Set(1, item.NewStack(bolt, 2))
	require.NoError(t, s.SaveInventory(ctx, inv))
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Close(), store.ErrClosed)

	s, err := store.Open(ctx, path, c, nil)
	require.NoError(t, err)
	defer s.Close()

	loaded := inventory.New("shelf", 3, inventory.WithOutputSlot(2))
	ok, err := s.LoadInventory(ctx, loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, inv.Slots(), loaded.Slots())

	names, err := s.InventoryNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shelf"}, names)
}

func TestStore_LoadMissing(t *testing.T) {
	s, _, _ := setup(t)
	defer s.Close()

	inv := inventory.New("attic", 2)
	ok, err := s.LoadInventory(context.Background(), inv)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_LoadUnknownItem(t *testing.T) {
	ctx := context.Background()
	s, c, path := setup(t)

	inv := inventory.New("shelf", 1)
	inv.Set(0, item.NewStack(&item.Item{ID: "gear", MaxStack: 3}, 2))
	require.NoError(t, s.SaveInventory(ctx, inv))
	require.NoError(t, s.Close())

	s, err := store.Open(ctx, path, c, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.LoadInventory(ctx, inventory.New("shelf", 1))
	assert.ErrorIs(t, err, item.ErrUnknownItem)
}

func TestStore_LoadIntoSmallerInventory(t *testing.T) {
	ctx := context.Background()
	s, c, _ := setup(t)
	defer s.Close()
	bolt := lookup(t, c, "bolt")

	inv := inventory.New("shelf", 3)
	inv.Set(0, item.NewStack(bolt, 1))
	inv.Set(2, item.NewStack(bolt, 2))
	require.NoError(t, s.SaveInventory(ctx, inv))

	small := inventory.New("shelf", 2)
	ok, err := s.LoadInventory(ctx, small)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.NewStack(bolt, 1), item.Empty()}, small.Slots())
}

func TestStore_Watch(t *testing.T) {
	ctx := context.Background()
	s, c, path := setup(t)
	bolt := lookup(t, c, "bolt")

	inv := inventory.New("shelf", 2)
	cancel := s.Watch(inv)
	inv.Set(0, item.NewStack(bolt, 3))
	inv.Set(1, item.NewStack(bolt, 1))
	cancel()
	inv.Set(1, item.Empty())

	// Close drains the queue.
	require.NoError(t, s.Close())
	assert.Zero(t, s.Dropped())

	s, err := store.Open(ctx, path, c, nil)
	require.NoError(t, err)
	defer s.Close()

	loaded := inventory.New("shelf", 2)
	ok, err := s.LoadInventory(ctx, loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []item.Stack{item.NewStack(bolt, 3), item.NewStack(bolt, 1)}, loaded.Slots())
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := store.Open(context.Background(), "", nil, nil)
	assert.Error(t, err)
}
