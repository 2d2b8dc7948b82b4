package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"

	"github.com/klauspost/compress/zstd"
)

// Prefix names the journal files: journal-YYYY-MM-DD-HH.jsonl.zst.
const Prefix = "journal"

// SlotEntry is the content of one slot after a change.
type SlotEntry struct {
	Slot  int    `json:"slot"`
	Item  string `json:"item,omitempty"`
	Count int    `json:"count"`
}

// Entry records one inventory change. Slot is -1 when several slots changed,
// in which case Slots holds the whole inventory.
type Entry struct {
	Time      time.Time   `json:"time"`
	Inventory string      `json:"inventory"`
	Slot      int         `json:"slot"`
	Slots     []SlotEntry `json:"slots"`
}

// EntryFor describes ev as it stands now.
func EntryFor(ev inventory.Event, now time.Time) Entry {
	inv := ev.Inventory
	e := Entry{Time: now.UTC(), Inventory: inv.Name(), Slot: ev.Slot}
	if ev.Slot >= 0 {
		e.Slots = []SlotEntry{slotEntry(inv, ev.Slot)}
		return e
	}
	for i := 0; i < inv.Size(); i++ {
		e.Slots = append(e.Slots, slotEntry(inv, i))
	}
	return e
}

func slotEntry(inv *inventory.Inventory, i int) SlotEntry {
	s := inv.Get(i)
	if s.IsEmpty() {
		return SlotEntry{Slot: i}
	}
	return SlotEntry{Slot: i, Item: s.Item.ID, Count: s.Count}
}

// Journal writes every change of the watched inventories.
type Journal struct {
	w   *Writer
	log *slog.Logger
}

func New(dir string, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{w: NewWriter(dir, Prefix), log: logger}
}

// Writer exposes the underlying file writer.
func (j *Journal) Writer() *Writer { return j.w }

// Watch journals inv until cancel is called. Write failures are logged.
func (j *Journal) Watch(inv *inventory.Inventory) (cancel func()) {
	return inv.Subscribe(func(ev inventory.Event) {
		if err := j.Record(ev); err != nil {
			j.log.Error("journal write failed", "inventory", inv.Name(), "error", err)
		}
	})
}

func (j *Journal) Record(ev inventory.Event) error {
	return j.w.Write(EntryFor(ev, j.w.Now()))
}

func (j *Journal) Close() error { return j.w.Close() }

// ReadFile decodes every entry of a journal file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer dec.Close()

	var out []Entry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return out, fmt.Errorf("decoding journal line %d: %w", len(out)+1, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("reading journal: %w", err)
	}
	return out, nil
}
