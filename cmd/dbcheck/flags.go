package main

import (
	"fmt"
	"strconv"
	"strings"
)

// criteriaFlag collects repeated -where column=value flags. Values that parse
// as integers are bound as int64 so they compare against integer columns on
// every driver; everything else is bound as a string.
type criteriaFlag map[string]any

func (c criteriaFlag) String() string {
	parts := make([]string, 0, len(c))
	for col, v := range c {
		parts = append(parts, fmt.Sprintf("%s=%v", col, v))
	}
	return strings.Join(parts, ",")
}

func (c criteriaFlag) Set(value string) error {
	col, raw, ok := strings.Cut(value, "=")
	if !ok || col == "" {
		return fmt.Errorf("expected column=value, got %q", value)
	}
	if _, dup := c[col]; dup {
		return fmt.Errorf("column %q given more than once", col)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		c[col] = n
	} else {
		c[col] = raw
	}
	return nil
}
