package fixture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/dbfixture/internal/config"
	"github.com/phrazzld/dbfixture/internal/store"
	"github.com/stretchr/testify/assert"
)

// DefaultQueryTimeout bounds each count query when Options.QueryTimeout is zero.
const DefaultQueryTimeout = 5 * time.Second

// Conn is the connection handle the fixture drives. *sql.DB and *sql.Conn
// satisfy it. The fixture never closes it.
type Conn interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Options configures a Fixture. Only Conn is required, and its absence is
// reported by Setup and Teardown rather than by New.
type Options struct {
	Conn    Conn
	Dialect Dialect // defaults to Postgres
	// Logger receives the transaction lifecycle and every rendered query at
	// debug level. Defaults to slog.Default().
	Logger              *slog.Logger
	TxOptions           *sql.TxOptions
	QueryTimeout        time.Duration
	ValidateIdentifiers bool
}

// Fixture wraps each test in a transaction that is rolled back afterwards.
type Fixture struct {
	conn     Conn
	dialect  Dialect
	logger   *slog.Logger
	txOpts   *sql.TxOptions
	timeout  time.Duration
	validate bool

	tx   *sql.Tx
	txID string
	test string
}

var _ Hooks = (*Fixture)(nil)

// New builds a Fixture from opts.
func New(opts Options) *Fixture {
	f := &Fixture{
		conn:     opts.Conn,
		dialect:  opts.Dialect,
		logger:   opts.Logger,
		txOpts:   opts.TxOptions,
		timeout:  opts.QueryTimeout,
		validate: opts.ValidateIdentifiers,
	}
	if f.dialect == nil {
		f.dialect = Postgres
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.timeout <= 0 {
		f.timeout = DefaultQueryTimeout
	}
	return f
}

// NewFromConfig builds a Fixture over conn from the fixture section of the configuration.
func NewFromConfig(conn Conn, cfg config.FixtureConfig, logger *slog.Logger) (*Fixture, error) {
	dialect, err := DialectByName(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	isolation, err := ParseIsolationLevel(cfg.IsolationLevel)
	if err != nil {
		return nil, err
	}

	var txOpts *sql.TxOptions
	if isolation != sql.LevelDefault || cfg.ReadOnly {
		txOpts = &sql.TxOptions{Isolation: isolation, ReadOnly: cfg.ReadOnly}
	}

	return New(Options{
		Conn:                conn,
		Dialect:             dialect,
		Logger:              logger,
		TxOptions:           txOpts,
		QueryTimeout:        cfg.QueryTimeout,
		ValidateIdentifiers: cfg.ValidateIdentifiers,
	}), nil
}

// ParseIsolationLevel maps a configured isolation level name to database/sql's level.
func ParseIsolationLevel(name string) (sql.IsolationLevel, error) {
	switch name {
	case "", "default":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("unknown isolation level %q", name)
	}
}

// Setup begins the test transaction. t may be nil outside a test run.
func (f *Fixture) Setup(t TestingT) error {
	if f == nil || f.conn == nil {
		return &ConfigurationError{Op: "Setup"}
	}
	if f.tx != nil {
		return fmt.Errorf("%w: opened by %s and never torn down", ErrTransactionActive, f.test)
	}

	// The transaction outlives this call, so it must not inherit a deadline.
	tx, err := f.conn.BeginTx(context.Background(), f.txOpts)
	if err != nil {
		return fmt.Errorf("begin test transaction: %w: %w", store.ErrTransactionFailed, f.dialect.MapError(err))
	}

	f.tx = tx
	f.txID = uuid.NewString()
	f.test = testName(t)

	f.logger.Debug("test transaction started",
		slog.String("test", f.test),
		slog.String("tx_id", f.txID),
	)
	return nil
}

// Teardown rolls back the test transaction. It returns nil when no
// transaction is open, so a failed Setup is not reported twice.
func (f *Fixture) Teardown(t TestingT) error {
	if f == nil || f.conn == nil {
		return &ConfigurationError{Op: "Teardown"}
	}
	if f.tx == nil {
		f.logger.Debug("no test transaction to roll back", slog.String("test", testName(t)))
		return nil
	}

	tx, txID, test := f.tx, f.txID, f.test
	f.tx, f.txID, f.test = nil, "", ""

	err := tx.Rollback()
	switch {
	case err == nil:
		f.logger.Debug("test transaction rolled back",
			slog.String("test", test),
			slog.String("tx_id", txID),
		)
		return nil
	case errors.Is(err, sql.ErrTxDone):
		f.logger.Warn("test transaction was already finished before teardown; its writes may have been committed",
			slog.String("test", test),
			slog.String("tx_id", txID),
		)
		return nil
	default:
		return fmt.Errorf("roll back test transaction: %w: %w", store.ErrTransactionFailed, err)
	}
}

// Attach runs Setup now and Teardown when t finishes.
func (f *Fixture) Attach(t TestingT) {
	t.Helper()
	Attach(t, f)
}

// Active reports whether a test transaction is open.
func (f *Fixture) Active() bool {
	return f != nil && f.tx != nil
}

// Tx returns the open test transaction for the test body, or nil between tests.
func (f *Fixture) Tx() store.DBTX {
	if f == nil || f.tx == nil {
		return nil
	}
	return f.tx
}

// CountInTable counts the rows of table matching criteria inside the test transaction.
func (f *Fixture) CountInTable(ctx context.Context, table string, criteria Criteria) (int64, error) {
	if f == nil || f.tx == nil {
		return 0, ErrNoTransaction
	}

	query, args, err := BuildCountQuery(f.dialect, table, criteria, f.validate)
	if err != nil {
		return 0, err
	}

	f.logger.Debug("query",
		slog.String("sql", query),
		slog.Any("args", args),
		slog.String("test", f.test),
		slog.String("tx_id", f.txID),
	)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	stmt, err := f.tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, store.NewStoreError(table, "count", "prepare failed", f.dialect.MapError(err))
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			f.logger.Warn("failed to close statement", slog.String("error", cerr.Error()))
		}
	}()

	var count int64
	if err := stmt.QueryRowContext(ctx, args...).Scan(&count); err != nil {
		return 0, store.NewStoreError(table, "count", "query failed", f.dialect.MapError(err))
	}

	return count, nil
}

// AssertExistsInTable passes when at least one row of table matches criteria.
// A failing query stops the test; an unmet expectation only marks it failed.
func (f *Fixture) AssertExistsInTable(t TestingT, table string, criteria Criteria) bool {
	t.Helper()

	count, err := f.CountInTable(context.Background(), table, criteria)
	if err != nil {
		t.Fatalf("checking rows in %s matching %s: %v", table, criteria, err)
		return false
	}

	return assert.Greater(t, count, int64(0),
		"expected at least one row in %s matching %s, found none", table, criteria)
}

// AssertNotExistsInTable passes when no row of table matches criteria.
func (f *Fixture) AssertNotExistsInTable(t TestingT, table string, criteria Criteria) bool {
	t.Helper()

	count, err := f.CountInTable(context.Background(), table, criteria)
	if err != nil {
		t.Fatalf("checking rows in %s matching %s: %v", table, criteria, err)
		return false
	}

	return assert.Less(t, count, int64(1),
		"expected no rows in %s matching %s, found %d", table, criteria, count)
}

func testName(t TestingT) string {
	if t == nil {
		return ""
	}
	return t.Name()
}
