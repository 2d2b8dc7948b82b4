package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/bhaddad5/Scrap-Merchant/internal/config"
	"github.com/bhaddad5/Scrap-Merchant/internal/game"
	standardInput "github.com/bhaddad5/Scrap-Merchant/internal/input"
	"github.com/bhaddad5/Scrap-Merchant/internal/observer"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	scriptPath := flag.String("script", "", "YAML input script to replay")
	frames := flag.Int("frames", 0, "stop after this many frames (0 runs until interrupted or the script ends)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *scriptPath, *frames); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, scriptPath string, frames int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.Info("config loaded", "path", configPath, "fps_limit", cfg.FPSLimit, "catalog", cfg.Catalog)

	var script *standardInput.Script
	if scriptPath != "" {
		script, err = standardInput.LoadScript(scriptPath)
		if err != nil {
			return err
		}
		slog.Info("replaying script", "path", scriptPath, "steps", len(script.Steps))
	}

	session, services, err := game.Setup(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			slog.Error("closing services", "err", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		// The observer only runs as long as the game.
		defer stop()
		app := game.NewApp(session, standardInput.NewInputManager(), script, slog.Default())
		err := app.Run(loopCtx, frames)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("game loop: %w", err)
		}
		return nil
	})

	if services.Hub != nil {
		srv := observer.NewServer(services.Hub, slog.Default())
		g.Go(func() error {
			return srv.Run(loopCtx, cfg.Observer.Addr)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if services.Hub != nil && services.Hub.Dropped() > 0 {
		slog.Warn("observer messages dropped", "count", services.Hub.Dropped())
	}
	if services.Store != nil && services.Store.Dropped() > 0 {
		slog.Warn("background saves dropped", "count", services.Store.Dropped())
	}
	return nil
}
