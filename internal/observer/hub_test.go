package observer

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bolt = &item.Item{ID: "bolt", DisplayName: "Bolt", MaxStack: 5}

func TestHub_MirrorsInventory(t *testing.T) {
	h := NewHub(nil)
	inv := inventory.New("shelf", 2)
	inv.Set(1, item.NewStack(bolt, 2))

	cancel := h.Watch(inv)
	assert.Equal(t, []journal.SlotEntry{{Slot: 0}, {Slot: 1, Item: "bolt", Count: 2}}, h.Snapshot()["shelf"])

	inv.Set(0, item.NewStack(bolt, 4))
	assert.Equal(t, journal.SlotEntry{Slot: 0, Item: "bolt", Count: 4}, h.Snapshot()["shelf"][0])

	cancel()
	inv.Set(0, item.Empty())
	assert.Equal(t, 4, h.Snapshot()["shelf"][0].Count)
	assert.Equal(t, []string{"shelf"}, h.Names())
}

func TestHub_SlowClientDrops(t *testing.T) {
	h := NewHub(nil)
	c := h.join()
	require.Equal(t, 1, h.Clients())
	require.Len(t, c.out, 1, "snapshot queued on join")

	for i := 0; i < clientBuffer+5; i++ {
		h.Publish(journal.Entry{Inventory: "shelf", Slot: 0, Slots: []journal.SlotEntry{{Slot: 0, Item: "bolt", Count: i}}})
	}
	assert.Len(t, c.out, clientBuffer)
	assert.Equal(t, int64(6), h.Dropped())

	h.leave(c)
	assert.Zero(t, h.Clients())
}

// replay applies what c received, in order, to an empty mirror.
func replay(t *testing.T, c *client) []journal.SlotEntry {
	t.Helper()
	var slots []journal.SlotEntry
	for len(c.out) > 0 {
		var m Message
		require.NoError(t, json.Unmarshal(<-c.out, &m))
		switch m.Type {
		case "snapshot":
			slots = m.Inventories["shelf"]
		case "change":
			for _, s := range m.Change.Slots {
				for len(slots) <= s.Slot {
					slots = append(slots, journal.SlotEntry{Slot: len(slots)})
				}
				slots[s.Slot] = s
			}
		}
	}
	return slots
}

func TestHub_JoinDuringPublishMissesNothing(t *testing.T) {
	for round := 0; round < 20; round++ {
		h := NewHub(nil)
		h.apply(journal.Entry{Inventory: "shelf", Slot: -1, Slots: []journal.SlotEntry{{Slot: 0}, {Slot: 1}}})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 2; i++ {
				h.Publish(journal.Entry{Inventory: "shelf", Slot: i - 1, Slots: []journal.SlotEntry{{Slot: i - 1, Item: "bolt", Count: i}}})
			}
		}()
		c := h.join()
		wg.Wait()

		assert.Equal(t, h.Snapshot()["shelf"], replay(t, c), "round %d", round)
	}
}
