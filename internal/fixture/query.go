package fixture

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Criteria maps column names to the values a row must equal.
type Criteria map[string]any

// Columns returns the criteria keys in the order their predicates and bound
// values appear in the generated query.
func (c Criteria) Columns() []string {
	cols := make([]string, 0, len(c))
	for col := range c {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// String renders the criteria for failure messages, e.g. {id: 5, name: "x"}.
func (c Criteria) String() string {
	if len(c) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(c))
	for _, col := range c.Columns() {
		parts = append(parts, fmt.Sprintf("%s: %s", col, formatValue(c[col])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", val)
	case []byte:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

var identifierSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(kind, name string, strict bool) error {
	if name == "" {
		return invalidIdentifier(kind, name, "is empty")
	}
	if !strict {
		return nil
	}
	for _, segment := range strings.Split(name, ".") {
		if !identifierSegment.MatchString(segment) {
			return invalidIdentifier(kind, name, "may only contain letters, digits and underscores")
		}
	}
	return nil
}

// BuildCountQuery renders
//
//	SELECT COUNT(*) FROM <table> WHERE <col1> = <p1> AND <col2> = <p2> ...
//
// with one equality predicate per criteria entry, in Columns order, and
// returns the values to bind in the same order. Empty criteria produce no
// WHERE clause, so every row of the table is counted. A nil value never
// matches under SQL equality.
func BuildCountQuery(d Dialect, table string, criteria Criteria, strict bool) (string, []any, error) {
	if err := checkIdentifier("table", table, strict); err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(d.QuoteIdentifier(table))

	cols := criteria.Columns()
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		if err := checkIdentifier("column", col, strict); err != nil {
			return "", nil, err
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(d.QuoteIdentifier(col))
		b.WriteString(" = ")
		b.WriteString(d.Placeholder(i + 1))
		args = append(args, criteria[col])
	}

	return b.String(), args, nil
}
