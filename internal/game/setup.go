package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	"github.com/bhaddad5/Scrap-Merchant/internal/item"
	"github.com/bhaddad5/Scrap-Merchant/internal/journal"
	"github.com/bhaddad5/Scrap-Merchant/internal/observer"
	"github.com/bhaddad5/Scrap-Merchant/internal/store"
)

// IconSize is the edge in pixels icons are scaled to.
const IconSize = 32

// Services are the optional sinks attached to a session's inventories.
type Services struct {
	Store   *store.Store
	Journal *journal.Journal
	Hub     *observer.Hub

	cancels []func()
}

// Close detaches every sink and closes the store and journal.
func (sv *Services) Close() error {
	for _, cancel := range sv.cancels {
		cancel()
	}
	sv.cancels = nil

	var errs []error
	if sv.Journal != nil {
		errs = append(errs, sv.Journal.Close())
	}
	if sv.Store != nil {
		if err := sv.Store.Close(); err != nil && !errors.Is(err, store.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Setup loads the catalog and builds a session from cfg. Saved inventories are
// restored when a store is configured; otherwise, or when nothing was saved,
// the starter items are seeded.
func Setup(ctx context.Context, cfg config.File, logger *slog.Logger) (*Session, *Services, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Apply()

	catalog, err := item.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	s, err := NewSession(cfg, catalog, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Icons != "" {
		s.Icons = item.LoadIcons(catalog, cfg.Icons, IconSize)
	}

	sv := &Services{}
	restored := false
	if cfg.Storage.Path != "" {
		sv.Store, err = store.Open(ctx, cfg.Storage.Path, catalog, logger)
		if err != nil {
			return nil, nil, err
		}
		for _, inv := range s.Inventories() {
			ok, err := sv.Store.LoadInventory(ctx, inv)
			if err != nil {
				_ = sv.Close()
				return nil, nil, err
			}
			restored = restored || ok
		}
	}
	if !restored {
		if err := s.SeedStarterItems(cfg.StarterItems); err != nil {
			_ = sv.Close()
			return nil, nil, err
		}
		if sv.Store != nil {
			for _, inv := range s.Inventories() {
				if err := sv.Store.SaveInventory(ctx, inv); err != nil {
					_ = sv.Close()
					return nil, nil, err
				}
			}
		}
	}

	if cfg.Journal.Dir != "" {
		sv.Journal = journal.New(cfg.Journal.Dir, logger)
	}
	if cfg.Observer.Addr != "" {
		sv.Hub = observer.NewHub(logger)
	}
	for _, inv := range s.Inventories() {
		if sv.Store != nil {
			sv.cancels = append(sv.cancels, sv.Store.Watch(inv))
		}
		if sv.Journal != nil {
			sv.cancels = append(sv.cancels, sv.Journal.Watch(inv))
		}
		if sv.Hub != nil {
			sv.cancels = append(sv.cancels, sv.Hub.Watch(inv))
		}
	}

	logger.Info("session ready",
		"items", catalog.Len(),
		"containers", len(s.World.Containers()),
		"restored", restored,
		"store", cfg.Storage.Path != "",
		"journal", cfg.Journal.Dir != "",
		"observer", cfg.Observer.Addr,
	)
	return s, sv, nil
}
