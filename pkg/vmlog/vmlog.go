// Package vmlog is a small structured-logging wrapper around log/slog,
// grounded on rcornwell-S370/util/logger/logger.go's LogHandler: a
// custom slog.Handler that formats a timestamp, level, and message and
// writes the result to an io.Writer. Here it always targets stderr,
// since the VM's own stdout is reserved for guest TRAP output (spec.md
// §6), and it carries the small set of diagnostics the driver needs:
// image-load failures, terminal failures, and instruction/trap
// failures during a run.
package vmlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// handler formats records as "time level message attr attr ..." the
// way LogHandler does, instead of slog's default JSON/text encodings.
type handler struct {
	out io.Writer
	mu  *sync.Mutex
	lvl slog.Level
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl
}

func (h *handler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *handler) WithGroup(_ string) slog.Handler      { return h }

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{r.Time.Format("2006/01/02 15:04:05"), r.Level.String() + ":", r.Message}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, a.String())
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, strings.Join(parts, " ")+"\n")
	return err
}

// New builds a logger that writes to out at or above the given level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(&handler{out: out, mu: &sync.Mutex{}, lvl: level})
}
