package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer is a thread-safe buffer for capturing log output in tests.
type TestLogBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write implements io.Writer for TestLogBuffer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffer contents as a string.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset clears the buffer contents.
func (b *TestLogBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// GetLogEntries parses the buffer contents as JSON log entries.
// Each line is assumed to be a separate JSON log entry.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]any, error) {
	lines := strings.Split(b.String(), "\n")
	entries := make([]map[string]any, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// EntriesWithMessage returns the parsed entries whose "msg" equals msg.
func (b *TestLogBuffer) EntriesWithMessage(msg string) ([]map[string]any, error) {
	entries, err := b.GetLogEntries()
	if err != nil {
		return nil, err
	}
	matched := entries[:0]
	for _, entry := range entries {
		if entry["msg"] == msg {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// GetTestLogger creates a debug-level JSON logger writing to a fresh buffer.
// Unlike SetupTestLogger it does not touch the default logger.
func GetTestLogger(t testing.TB) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	logBuf := &TestLogBuffer{}
	handler := slog.NewJSONHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), logBuf
}

// SetupTestLogger installs a buffer-backed logger as the default for the
// duration of the test and restores the previous default on cleanup.
func SetupTestLogger(t testing.TB) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	original := slog.Default()
	logger, logBuf := GetTestLogger(t)
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(original) })

	return logger, logBuf
}

// AssertLogContains checks if the log buffer contains specific content.
// If the content is not found, it fails the test with a useful message.
func AssertLogContains(t testing.TB, logBuf *TestLogBuffer, content string) {
	t.Helper()

	logs := logBuf.String()
	if !strings.Contains(logs, content) {
		t.Errorf("Expected log to contain %q, but it doesn't.\nLogs:\n%s", content, logs)
	}
}
