package app

import (
	"io"
	"os"

	"github.com/dshills/tupshar/internal/config"
	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/event"
	"github.com/dshills/tupshar/internal/glyph"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 5),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initGlyphs,
		b.initEventBus,
		b.initDocuments,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads the configuration and applies command-line overrides.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}
	if b.opts.SignList != "" {
		cfg.Glyphs.SignList = b.opts.SignList
	}
	if b.opts.Strict {
		cfg.Editor.Strict = true
	}
	if b.opts.NoWatch {
		cfg.Glyphs.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger creates the application logger. Output goes to the configured
// log file, or to Options.LogOutput.
func (b *bootstrapper) initLogger() error {
	cfg := b.app.config.Logging

	var out io.Writer = os.Stderr
	if b.opts.LogOutput != nil {
		out = b.opts.LogOutput
	}
	if cfg.File != "" {
		f, err := OpenLogFile(cfg.File)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		b.app.logCloser = f
		out = f
	}

	b.app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Level),
		Output: out,
		Prefix: "tupshar",
	})
	b.initOrder = append(b.initOrder, "logger")

	if src := b.app.config.Source; src != "" {
		b.app.logger.Debug("configuration loaded from %s", src)
	}
	return nil
}

// initGlyphs loads the sign list and starts watching it.
func (b *bootstrapper) initGlyphs() error {
	cfg := b.app.config.Glyphs
	fallback := glyph.WithFallback(cfg.Fallback)

	if cfg.SignList == "" {
		b.app.signs = glyph.NewTable(nil, fallback)
		b.initOrder = append(b.initOrder, "glyphs")
		return nil
	}

	table, err := glyph.OpenTable(cfg.SignList, fallback)
	if err != nil {
		return &InitError{Component: "glyphs", Err: err}
	}
	b.app.signs = table
	b.initOrder = append(b.initOrder, "glyphs")

	log := b.app.logger.WithComponent("glyphs")
	log.Info("loaded %d signs from %s", table.Len(), cfg.SignList)

	if cfg.Watch {
		r, err := glyph.NewReloader(table, cfg.SignList, log)
		if err != nil {
			// Editing works without reloads.
			b.app.logComponentError("glyphs", NewComponentError("glyphs", "watch", err))
			return nil
		}
		b.app.reloader = r
	}
	return nil
}

// initEventBus creates the bus every document publishes on.
func (b *bootstrapper) initEventBus() error {
	log := b.app.logger.WithComponent("event")
	b.app.bus = event.NewBus(
		event.WithPanicHandler(func(ev event.Event, recovered any) {
			log.Error("handler panic on %s: %v", ev.Topic, recovered)
		}),
		event.WithErrorHandler(func(err *event.HandlerError) {
			log.Warn("%v", err)
		}),
	)
	b.initOrder = append(b.initOrder, "eventBus")
	return nil
}

// initDocuments creates the document manager.
func (b *bootstrapper) initDocuments() error {
	cfg := b.app.config.Editor
	b.app.documents = document.NewManager(b.app.signs,
		document.WithBus(b.app.bus),
		document.WithLogger(b.app.logger.WithComponent("document")),
		document.WithStrict(cfg.Strict),
		document.WithProject(cfg.Project),
	)
	b.initOrder = append(b.initOrder, "documents")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "glyphs":
			if b.app.reloader != nil {
				_ = b.app.reloader.Close()
				b.app.reloader = nil
			}
			b.app.signs = nil
		case "logger":
			if b.app.logCloser != nil {
				_ = b.app.logCloser.Close()
				b.app.logCloser = nil
			}
			b.app.logger = nil
		case "config":
			b.app.config = nil
		case "eventBus":
			b.app.bus = nil
		case "documents":
			b.app.documents = nil
		}
	}
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
