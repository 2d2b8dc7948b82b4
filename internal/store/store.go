package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bhaddad5/Scrap-Merchant/internal/inventory"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/store/migrations"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Resolver turns saved item ids back into items.
type Resolver interface {
	Lookup(id string) (*item.Item, error)
}

// Store persists inventories in a SQLite file. Watched inventories are saved
// in the background by a single writer goroutine.
type Store struct {
	db    *sql.DB
	items Resolver
	log   *slog.Logger

	mu      sync.RWMutex
	closed  bool
	ch      chan snapshot
	wg      sync.WaitGroup
	dropped atomic.Int64
}

type snapshot struct {
	name   string
	output int
	slots  []item.Stack
}

const queueSize = 256

// Open opens or creates the database at path and migrates it.
func Open(ctx context.Context, path string, items Resolver, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("opening store: empty path")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:    db,
		items: items,
		log:   logger,
		ch:    make(chan snapshot, queueSize),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("setting %q: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SaveInventory replaces the saved contents of inv in one transaction.
func (s *Store) SaveInventory(ctx context.Context, inv *inventory.Inventory) error {
	return s.save(ctx, snapshot{name: inv.Name(), output: inv.OutputSlot(), slots: inv.Slots()})
}

func (s *Store) save(ctx context.Context, snap snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving %s: %w", snap.name, err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventories (name, size, output_slot, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET size = excluded.size, output_slot = excluded.output_slot, updated_at = excluded.updated_at`,
		snap.name, len(snap.slots), snap.output, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving %s: %w", snap.name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_slots WHERE inventory = ?`, snap.name); err != nil {
		return fmt.Errorf("saving %s: %w", snap.name, err)
	}
	for i, st := range snap.slots {
		if st.IsEmpty() {
			continue
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO inventory_slots (inventory, slot, item_id, count) VALUES (?, ?, ?, ?)`,
			snap.name, i, st.Item.ID, st.Count)
		if err != nil {
			return fmt.Errorf("saving %s slot %d: %w", snap.name, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving %s: %w", snap.name, err)
	}
	return nil
}

// LoadInventory restores the saved contents of inv. It reports false, and
// leaves inv alone, when nothing was saved under inv's name.
func (s *Store) LoadInventory(ctx context.Context, inv *inventory.Inventory) (bool, error) {
	var size int
	err := s.db.QueryRowContext(ctx, `SELECT size FROM inventories WHERE name = ?`, inv.Name()).Scan(&size)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", inv.Name(), err)
	}
	if size != inv.Size() {
		s.log.Warn("saved inventory size differs", "inventory", inv.Name(), "saved", size, "size", inv.Size())
	}

	rows, err := s.db.QueryContext(ctx, `SELECT slot, item_id, count FROM inventory_slots WHERE inventory = ? ORDER BY slot`, inv.Name())
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", inv.Name(), err)
	}
	defer rows.Close()

	slots := make([]item.Stack, inv.Size())
	for rows.Next() {
		var (
			slot, count int
			id          string
		)
		if err := rows.Scan(&slot, &id, &count); err != nil {
			return false, fmt.Errorf("loading %s: %w", inv.Name(), err)
		}
		if slot < 0 || slot >= len(slots) {
			s.log.Warn("dropping saved slot out of range", "inventory", inv.Name(), "slot", slot, "item", id)
			continue
		}
		it, err := s.items.Lookup(id)
		if err != nil {
			return false, fmt.Errorf("loading %s slot %d: %w", inv.Name(), slot, err)
		}
		slots[slot] = item.NewStack(it, min(count, it.GetMaxStackSize()))
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("loading %s: %w", inv.Name(), err)
	}

	inv.Restore(slots)
	return true, nil
}

// InventoryNames lists every saved inventory.
func (s *Store) InventoryNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM inventories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing inventories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("listing inventories: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Watch saves inv in the background after every change until cancel is
// called. Saves never block the caller; when the queue is full the change is
// dropped and counted.
func (s *Store) Watch(inv *inventory.Inventory) (cancel func()) {
	return inv.Subscribe(func(ev inventory.Event) {
		s.enqueue(snapshot{name: inv.Name(), output: inv.OutputSlot(), slots: inv.Slots()})
	})
}

func (s *Store) enqueue(snap snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}
	select {
	case s.ch <- snap:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many background saves were skipped.
func (s *Store) Dropped() int64 { return s.dropped.Load() }

func (s *Store) loop() {
	for snap := range s.ch {
		if err := s.save(context.Background(), snap); err != nil {
			s.log.Error("background save failed", "inventory", snap.name, "error", err)
		}
	}
}

// Close drains pending saves and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.wg.Wait()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return nil
}
