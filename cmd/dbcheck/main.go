// Package main implements dbcheck, which checks whether rows matching a set
// of column values exist in a table. The check runs inside a transaction
// that is rolled back, the same way the test fixture runs its assertions.
//
// Usage:
//
//	DBFIXTURE_DATABASE_URL=postgres://... dbcheck -table users -where id=5 -where name=x
//	dbcheck -table users -where id=5 -absent
//
// It exits 0 when the expectation holds, 1 when it does not and 2 on errors.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/dbfixture/internal/ciutil"
	"github.com/phrazzld/dbfixture/internal/config"
	"github.com/phrazzld/dbfixture/internal/fixture"
	"github.com/phrazzld/dbfixture/internal/platform/logger"
	"github.com/phrazzld/dbfixture/internal/redact"
	"github.com/phrazzld/dbfixture/internal/testdb"
)

// Exit codes.
const (
	exitOK    = 0
	exitUnmet = 1
	exitError = 2
)

// errUnmet marks a check that ran but did not hold.
var errUnmet = errors.New("expectation not met")

type options struct {
	table         string
	where         criteriaFlag
	absent        bool
	migrationsDir string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitError
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %s\n", redact.Error(err))
		return exitError
	}

	log, err := logger.SetupWithWriter(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logger: %v\n", err)
		return exitError
	}

	err = check(logger.WithLogger(context.Background(), log), cfg, opts, stdout)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUnmet):
		return exitUnmet
	default:
		log.Error("check failed", slog.String("error", redact.Error(err)))
		return exitError
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{where: criteriaFlag{}}

	fs := flag.NewFlagSet("dbcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.table, "table", "", "table to check (required)")
	fs.Var(&opts.where, "where", "column=value criterion; repeat for more columns")
	fs.BoolVar(&opts.absent, "absent", false, "expect no matching row instead of at least one")
	fs.StringVar(&opts.migrationsDir, "migrations", "",
		"apply goose migrations from this directory first (default: database.migrations_dir)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.table == "" {
		fmt.Fprintln(stderr, "-table is required")
		fs.Usage()
		return options{}, errors.New("missing -table")
	}

	return opts, nil
}

func check(ctx context.Context, cfg *config.Config, opts options, stdout io.Writer) error {
	log := logger.FromContext(ctx)

	db, err := testdb.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Warn("failed to close database", slog.String("error", cerr.Error()))
		}
	}()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	log.Debug("database connection established",
		slog.String("driver", cfg.Database.Driver),
		slog.String("url", ciutil.MaskSensitiveValue(cfg.Database.URL)),
	)

	migrationsDir := opts.migrationsDir
	if migrationsDir == "" {
		migrationsDir = cfg.Database.MigrationsDir
	}
	if migrationsDir != "" {
		if err := testdb.Migrate(ctx, db, cfg.Database.Driver, os.DirFS(migrationsDir), "."); err != nil {
			return err
		}
		log.Info("migrations applied", slog.String("dir", migrationsDir))
	}

	fx, err := fixture.NewFromConfig(db, cfg.Fixture, log)
	if err != nil {
		return err
	}

	if err := fx.Setup(nil); err != nil {
		return err
	}
	defer func() {
		if terr := fx.Teardown(nil); terr != nil {
			log.Error("failed to roll back check transaction", slog.String("error", terr.Error()))
		}
	}()

	criteria := fixture.Criteria(opts.where)
	count, err := fx.CountInTable(ctx, opts.table, criteria)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d row(s) in %s matching %s\n", count, opts.table, criteria)

	if opts.absent && count > 0 {
		return fmt.Errorf("%w: expected no rows, found %d", errUnmet, count)
	}
	if !opts.absent && count == 0 {
		return fmt.Errorf("%w: expected at least one row, found none", errUnmet)
	}
	return nil
}
