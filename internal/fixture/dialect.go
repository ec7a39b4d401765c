package fixture

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/dbfixture/internal/platform/postgres"
)

// Dialect covers the SQL differences the count query depends on.
type Dialect interface {
	// Name is the configuration name of the dialect.
	Name() string
	// QuoteIdentifier quotes a possibly dot-qualified identifier, one
	// segment at a time, doubling any embedded quote characters.
	QuoteIdentifier(name string) string
	// Placeholder returns the bind marker for the 1-based position.
	Placeholder(position int) string
	// MapError translates driver errors into store errors where it can.
	MapError(err error) error
}

// Built-in dialects.
var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
	MySQL    Dialect = mysqlDialect{}
)

// DialectByName resolves a configured dialect name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string                       { return "postgres" }
func (postgresDialect) QuoteIdentifier(name string) string { return quoteQualified(name, '"') }
func (postgresDialect) Placeholder(position int) string    { return "$" + strconv.Itoa(position) }
func (postgresDialect) MapError(err error) error           { return postgres.MapError(err) }

type sqliteDialect struct{}

func (sqliteDialect) Name() string                       { return "sqlite" }
func (sqliteDialect) QuoteIdentifier(name string) string { return quoteQualified(name, '"') }
func (sqliteDialect) Placeholder(int) string             { return "?" }
func (sqliteDialect) MapError(err error) error           { return err }

type mysqlDialect struct{}

func (mysqlDialect) Name() string                       { return "mysql" }
func (mysqlDialect) QuoteIdentifier(name string) string { return quoteQualified(name, '`') }
func (mysqlDialect) Placeholder(int) string             { return "?" }
func (mysqlDialect) MapError(err error) error           { return err }

func quoteQualified(name string, quote byte) string {
	q := string(quote)
	segments := strings.Split(name, ".")
	for i, s := range segments {
		segments[i] = q + strings.ReplaceAll(s, q, q+q) + q
	}
	return strings.Join(segments, ".")
}
