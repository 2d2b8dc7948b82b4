package journal_test

import (
	"testing"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bolt = &item.Item{ID: "bolt", DisplayName: "Bolt", MaxStack: 5}

func TestJournal_WatchAndRotate(t *testing.T) {
	dir := t.TempDir()
	j := journal.New(dir, nil)
	now := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	j.Writer().Now = func() time.Time { return now }

	inv := inventory.New("shelf", 2)
	cancel := j.Watch(inv)
	inv.Set(0, item.NewStack(bolt, 3))

	now = now.Add(2 * time.Minute)
	inv.Restore([]item.Stack{item.Empty(), item.NewStack(bolt, 1)})
	cancel()
	inv.Set(0, item.NewStack(bolt, 5))
	require.NoError(t, j.Close())

	first, err := journal.ReadFile(j.Writer().Path("2026-03-01-10"))
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, journal.Entry{
		Time:      time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC),
		Inventory: "shelf",
		Slot:      0,
		Slots:     []journal.SlotEntry{{Slot: 0, Item: "bolt", Count: 3}},
	}, first[0])

	second, err := journal.ReadFile(j.Writer().Path("2026-03-01-11"))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, -1, second[0].Slot)
	assert.Equal(t, []journal.SlotEntry{{Slot: 0}, {Slot: 1, Item: "bolt", Count: 1}}, second[0].Slots)
}

func TestJournal_AppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	inv := inventory.New("shelf", 1)

	for range 2 {
		j := journal.New(dir, nil)
		j.Writer().Now = func() time.Time { return now }
		require.NoError(t, j.Record(inventory.Event{Inventory: inv, Slot: 0}))
		require.NoError(t, j.Close())
	}

	entries, err := journal.ReadFile(journal.NewWriter(dir, journal.Prefix).Path("2026-03-01-10"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := journal.ReadFile(t.TempDir() + "/nope.jsonl.zst")
	assert.Error(t, err)
}
