package observer

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/journal"
)

// Message is what observers receive: one snapshot on connect, then changes.
type Message struct {
	Type        string                         `json:"type"` // snapshot or change
	Inventories map[string][]journal.SlotEntry `json:"inventories,omitempty"`
	Change      *journal.Entry                 `json:"change,omitempty"`
}

const clientBuffer = 64

type client struct {
	out chan []byte
}

// Hub mirrors watched inventories and fans their changes out to websocket
// clients. Publishing never blocks: a client that cannot keep up misses
// messages, which are counted.
type Hub struct {
	log *slog.Logger
	now func() time.Time

	mu      sync.RWMutex
	state   map[string][]journal.SlotEntry
	clients map[*client]struct{}

	dropped atomic.Int64
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		log:     logger,
		now:     time.Now,
		state:   make(map[string][]journal.SlotEntry),
		clients: make(map[*client]struct{}),
	}
}

// Watch mirrors inv and publishes its changes until cancel is called.
// It must be called from the goroutine that mutates inv.
func (h *Hub) Watch(inv *inventory.Inventory) (cancel func()) {
	h.apply(journal.EntryFor(inventory.Event{Inventory: inv, Slot: -1}, h.now()))
	return inv.Subscribe(func(ev inventory.Event) {
		h.Publish(journal.EntryFor(ev, h.now()))
	})
}

// Publish records e and sends it to every client. Recording and sending share
// one lock with join, so a joining client sees each change exactly once:
// either in its snapshot or as a change message after it.
func (h *Hub) Publish(e journal.Entry) {
	b, err := json.Marshal(Message{Type: "change", Change: &e})
	if err != nil {
		h.log.Error("encoding observer message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.applyLocked(e)
	for c := range h.clients {
		select {
		case c.out <- b:
		default:
			h.dropped.Add(1)
		}
	}
}

func (h *Hub) apply(e journal.Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.applyLocked(e)
}

func (h *Hub) applyLocked(e journal.Entry) {
	if e.Slot < 0 {
		h.state[e.Inventory] = append([]journal.SlotEntry(nil), e.Slots...)
		return
	}
	cur := h.state[e.Inventory]
	for _, s := range e.Slots {
		for len(cur) <= s.Slot {
			cur = append(cur, journal.SlotEntry{Slot: len(cur)})
		}
		cur[s.Slot] = s
	}
	h.state[e.Inventory] = cur
}

// Snapshot returns a copy of the mirrored inventories.
func (h *Hub) Snapshot() map[string][]journal.SlotEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() map[string][]journal.SlotEntry {
	out := make(map[string][]journal.SlotEntry, len(h.state))
	for k, v := range h.state {
		out[k] = append([]journal.SlotEntry(nil), v...)
	}
	return out
}

// Names returns the mirrored inventory names, sorted.
func (h *Hub) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.state))
	for k := range h.state {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many messages were not delivered to slow clients.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// join registers a client and queues the current snapshot for it, under the
// lock Publish takes.
func (h *Hub) join() *client {
	c := &client{out: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	b, err := json.Marshal(Message{Type: "snapshot", Inventories: h.snapshotLocked()})
	if err != nil {
		h.log.Error("encoding observer snapshot", "error", err)
	} else {
		c.out <- b
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}
