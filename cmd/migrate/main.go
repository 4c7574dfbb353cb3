package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/stockyard-hq/stockyard-backend/pkg/config"
	"github.com/stockyard-hq/stockyard-backend/pkg/migrate"
)

const usage = `migrate runs goose SQL migrations.

Usage:
  migrate [-dir <path>] <command> [args]

Commands:
  up                 apply all pending migrations
  down               roll back the latest migration
  status             print migration status
  version            print the current DB version
  up-to <version>    migrate up or down to the given version
  create <name>      create a new SQL migration file
  validate           check migration filenames and headers
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}
	command := args[0]

	// create and validate work without a database connection.
	switch command {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("create requires a migration name")
		}
		path, err := migrate.CreateSQLMigration(*dir, args[1])
		if err != nil {
			return err
		}
		fmt.Println("created", path)
		return nil
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			return err
		}
		fmt.Println("migrations valid")
		return nil
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	switch command {
	case "up", "down", "status", "version":
		return migrate.Run(ctx, db, *dir, command, args[1:]...)
	case "up-to":
		if len(args) < 2 {
			return fmt.Errorf("up-to requires a target version")
		}
		return migrate.MigrateToVersion(ctx, db, *dir, args[1])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
