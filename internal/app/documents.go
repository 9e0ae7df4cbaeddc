package app

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/plugin/lua"
)

// Export formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// documentPath applies the save.compress setting to a new document path.
func (app *Application) documentPath(path string) string {
	if app.config.Save.Compress && !document.IsCompressed(path) {
		return path + document.CompressedExt
	}
	return path
}

// NewDocument creates an empty document at path and writes it. An existing
// file is never overwritten.
func (app *Application) NewDocument(path string) (*document.Document, error) {
	if app.IsClosed() {
		return nil, ErrClosed
	}
	path = app.documentPath(path)

	if _, err := os.Stat(path); err == nil {
		return nil, NewOperationError("new", path, ErrFileExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, NewOperationError("new", path, err)
	}

	doc, err := app.documents.Create(path)
	if err != nil {
		return nil, NewOperationError("new", path, err)
	}
	if err := doc.Save(); err != nil {
		return nil, NewOperationError("new", path, err)
	}
	app.Logger().Info("created %s (%s)", doc.Path(), doc.TextID())
	return doc, nil
}

// OpenDocument opens path and makes it the active document.
func (app *Application) OpenDocument(path string) (*document.Document, error) {
	if app.IsClosed() {
		return nil, ErrClosed
	}
	doc, err := app.documents.Open(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	app.Logger().Debug("opened %s: %d lemmas on %d lines", doc.Path(), doc.Len(), len(doc.Lines()))
	return doc, nil
}

// SaveDocument writes doc to its path.
func (app *Application) SaveDocument(doc *document.Document) error {
	if doc == nil {
		return ErrNoActiveDocument
	}
	if err := doc.Save(); err != nil {
		return NewOperationError("save", doc.Path(), err)
	}
	app.Logger().Info("saved %s", doc.Path())
	return nil
}

// SaveActive writes the active document.
func (app *Application) SaveActive() error {
	return app.SaveDocument(app.documents.Active())
}

// Export renders doc in format, one of FormatText or FormatHTML.
func (app *Application) Export(doc *document.Document, format string) ([]byte, error) {
	if doc == nil {
		return nil, ErrNoActiveDocument
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case FormatText, "json":
		data, err = doc.ExportText()
	case FormatHTML:
		data, err = doc.ExportHTML()
	default:
		return nil, NewOperationError("export", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, NewOperationError("export", doc.Path(), err)
	}
	return data, nil
}

// RunScript runs the Lua script at path against doc. Script output goes to
// out. A failing script leaves doc unchanged.
func (app *Application) RunScript(ctx context.Context, doc *document.Document, path string, out io.Writer) error {
	if doc == nil {
		return ErrNoActiveDocument
	}
	if out == nil {
		out = io.Discard
	}

	log := app.Logger().WithComponent("lua").WithField("script", path)
	before := doc.Len()
	if err := lua.RunFile(ctx, doc, path, lua.WithOutput(out)); err != nil {
		log.Warn("script failed: %v", err)
		return NewOperationError("run", path, err)
	}
	log.Info("script finished: %d -> %d lemmas", before, doc.Len())
	return nil
}
