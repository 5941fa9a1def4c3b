package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/tterrag131/reimagined-disco/internal/cli"
	"github.com/tterrag131/reimagined-disco/internal/db"
	"github.com/tterrag131/reimagined-disco/internal/repository"
	"github.com/tterrag131/reimagined-disco/internal/session"
	"github.com/tterrag131/reimagined-disco/internal/snapshot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := snapshot.LoadConfig()

	// Determine cache path: env var or default ~/.prodplan/prodplan.db
	dbPath := cfg.CachePath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".prodplan", "prodplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening snapshot cache: %w", err)
	}
	defer database.Close()

	var observer snapshot.Observer = snapshot.NoopObserver{}
	if cfg.LogFetches {
		observer = snapshot.NewLogObserver(os.Stderr)
	}

	fetcher := snapshot.NewFetcher(cfg, nil, observer)
	cache := repository.NewSQLiteSnapshotRepo(database)

	app := &cli.App{
		Session: session.New(fetcher, cache, nil),
		Config:  cfg,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
