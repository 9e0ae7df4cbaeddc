package lua

import (
	"context"
	"path/filepath"

	"github.com/dshills/tupshar/internal/document"
)

// RunFile executes the script at path against doc as one undo step. A
// failing script leaves doc as it was.
func RunFile(ctx context.Context, doc *document.Document, path string, opts ...StateOption) error {
	return run(doc, "script "+filepath.Base(path), opts, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// RunString executes code against doc as one undo step.
func RunString(ctx context.Context, doc *document.Document, code string, opts ...StateOption) error {
	return run(doc, "script", opts, func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func run(doc *document.Document, name string, opts []StateOption, fn func(*State) error) error {
	if doc == nil {
		return ErrNoDocument
	}

	s, err := NewState(opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := NewModule(doc).Register(s); err != nil {
		return err
	}
	return doc.Batch(name, func() error {
		return fn(s)
	})
}
