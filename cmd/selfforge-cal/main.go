package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/selfforge/calendar/internal/category"
	"github.com/selfforge/calendar/internal/cli"
	"github.com/selfforge/calendar/internal/kv"
	"github.com/selfforge/calendar/internal/remote"
	"github.com/selfforge/calendar/internal/service"
	"github.com/selfforge/calendar/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Storage backend: SELFFORGE_DB selects a SQLite file, otherwise items
	// live in a diskv directory under SELFFORGE_DATA or ~/.selfforge-cal.
	var backend kv.KV
	if dbPath := os.Getenv("SELFFORGE_DB"); dbPath != "" {
		db, err := kv.OpenSQLite(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
		backend = db
	} else {
		dataDir := os.Getenv("SELFFORGE_DATA")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".selfforge-cal")
		}
		backend = kv.NewDisk(dataDir)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	token := os.Getenv("SELFFORGE_TOKEN")
	reg := category.NewRegistry(backend, nil)
	items := store.NewItemStore(backend, reg, store.Namespace(token), nil, logger)

	// The engine is fully offline unless a backend endpoint is configured.
	var source service.ItemSource
	if endpoint := os.Getenv("SELFFORGE_API"); endpoint != "" {
		source = remote.NewClient(remote.Config{
			Endpoint: endpoint,
			Token:    token,
		})
	}

	var observer service.UseCaseObserver
	if os.Getenv("SELFFORGE_DEBUG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	svc := service.NewCalendarService(items, reg, source, nil, observer)
	if err := svc.Load(); err != nil {
		return fmt.Errorf("loading calendar data: %w", err)
	}

	app := &cli.App{Calendar: svc}
	return cli.NewRootCmd(app).Execute()
}

func logLevel() slog.Level {
	if os.Getenv("SELFFORGE_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
