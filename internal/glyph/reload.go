package glyph

import (
	"github.com/dshills/tupshar/internal/watcher"
)

// Logger is the logging surface the reloader reports through.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Reloader refreshes a Table whenever its sign-list file changes.
type Reloader struct {
	table  *Table
	path   string
	w      *watcher.Watcher
	logger Logger
}

// NewReloader starts watching path and replaces the contents of table after
// every change. A file that fails to parse leaves the table untouched.
func NewReloader(table *Table, path string, logger Logger, opts ...watcher.Option) (*Reloader, error) {
	r := &Reloader{table: table, path: path, logger: logger}

	opts = append([]watcher.Option{watcher.WithErrorHandler(r.onError)}, opts...)
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}
	r.w = w
	if err := w.Watch(path, r.onChange); err != nil {
		_ = w.Close()
		return nil, err
	}
	return r, nil
}

func (r *Reloader) onChange(ev watcher.Event) {
	if ev.Op.Has(watcher.OpRemove) && !ev.Op.Has(watcher.OpCreate) {
		return
	}

	entries, err := LoadFile(r.path)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("sign list reload failed: %v", err)
		}
		return
	}
	r.table.Replace(entries)
	if r.logger != nil {
		r.logger.Info("sign list reloaded: %d entries", len(entries))
	}
}

func (r *Reloader) onError(err error) {
	if r.logger != nil {
		r.logger.Warn("sign list watch: %v", err)
	}
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}
