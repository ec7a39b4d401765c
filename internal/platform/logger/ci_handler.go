package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/phrazzld/dbfixture/internal/ciutil"
)

// CIHandler is a custom slog.Handler that adds CI environment metadata
// and source code location to log records.
type CIHandler struct {
	// The underlying handler (usually JSON)
	handler slog.Handler
	// CI metadata to add to every log record
	metadata map[string]string
	// Whether to add source location info
	addSource bool
}

// NewCIHandler creates a new CIHandler that wraps a JSON handler writing to out,
// adding CI metadata and source information to each log record.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	var handlerOpts slog.HandlerOptions
	if opts != nil {
		// Clone the options to avoid modifying the caller's options
		handlerOpts = *opts
	}

	return &CIHandler{
		handler:   slog.NewJSONHandler(out, &handlerOpts),
		metadata:  ciMetadata(),
		addSource: handlerOpts.AddSource,
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithAttrs(attrs),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{
		handler:   h.handler.WithGroup(name),
		metadata:  h.metadata,
		addSource: h.addSource,
	}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()

	if h.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		enhanced.AddAttrs(
			slog.String("source_file", frame.File),
			slog.Int("source_line", frame.Line),
			slog.String("source_func", frame.Function),
		)
	}

	for key, value := range h.metadata {
		enhanced.AddAttrs(slog.String(key, value))
	}

	// Sub-second precision helps ordering interleaved test output
	nanoseconds := enhanced.Time.UnixNano() % int64(time.Second)
	enhanced.AddAttrs(slog.Int64("timestamp_nano", nanoseconds))

	return h.handler.Handle(ctx, enhanced)
}

// ciMetadata collects the CI provider details worth attaching to every record.
func ciMetadata() map[string]string {
	metadata := map[string]string{}
	if !ciutil.IsCI() {
		return metadata
	}

	metadata["ci"] = "true"
	for attr, envVar := range map[string]string{
		"ci_workflow": "GITHUB_WORKFLOW",
		"ci_run_id":   "GITHUB_RUN_ID",
		"ci_job":      "CI_JOB_NAME",
		"ci_commit":   "GITHUB_SHA",
	} {
		if v := os.Getenv(envVar); v != "" {
			metadata[attr] = v
		}
	}
	return metadata
}
