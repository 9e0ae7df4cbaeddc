// Package app wires the tupshar components together: configuration,
// logging, the sign list, the event bus and the open documents.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/tupshar/internal/config"
	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/event"
	"github.com/dshills/tupshar/internal/glyph"
)

// Application owns the long-lived components of a tupshar session.
type Application struct {
	mu sync.RWMutex

	config    *config.Config
	logger    *Logger
	logCloser io.Closer

	signs    *glyph.Table
	reloader *glyph.Reloader

	bus       *event.Bus
	documents *document.Manager

	closed atomic.Bool
	opts   Options
}

// Options configures the application. Non-zero fields override the
// configuration file.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// SignList is the sign-list file.
	SignList string

	// Strict reports mode mismatches as errors.
	Strict bool

	// NoWatch disables sign-list reloading.
	NoWatch bool

	// LogOutput receives log lines when no log file is configured. Nil
	// means stderr; the interactive editor passes io.Discard.
	LogOutput io.Writer
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the merged configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Signs returns the sign table shared by every document.
func (app *Application) Signs() *glyph.Table {
	return app.signs
}

// Bus returns the event bus shared by every document.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Documents returns the document manager.
func (app *Application) Documents() *document.Manager {
	return app.documents
}

// IsClosed reports whether Close has been called.
func (app *Application) IsClosed() bool {
	return app.closed.Load()
}

// Close stops the sign-list watcher and closes the log file. Closing twice
// is a no-op.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	errs := NewErrorList()
	if app.reloader != nil {
		if err := app.reloader.Close(); err != nil {
			errs.Add(NewComponentError("glyphs", "stop watcher", err))
		}
		app.reloader = nil
	}
	if dirty := len(app.documents.Dirty()); dirty > 0 {
		app.Logger().Warn("closing with %d unsaved document(s)", dirty)
	}
	if app.logCloser != nil {
		errs.Add(app.logCloser.Close())
		app.logCloser = nil
	}
	return errs.AsError()
}
