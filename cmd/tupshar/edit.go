package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/tupshar/internal/app"
	"github.com/dshills/tupshar/internal/document"
	"github.com/dshills/tupshar/internal/ui"
)

var errNoTerminal = errors.New("edit needs an interactive terminal")

func newEditCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a document in the terminal",
		Long: `Open the interactive editor. Without a file the editor starts on a scratch
document; a file that does not exist yet is created on first save.

Keys: arrows move, Tab switches view, Enter edits at the cursor,
Ctrl-N starts a new line, Ctrl-S saves, Ctrl-Z and Ctrl-Y undo and redo,
Ctrl-Q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNoTerminal
			}

			// Log lines would corrupt the screen unless they go to a file.
			a, err := g.open(io.Discard, true)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := editTarget(a, args)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			return runEditor(cmd.Context(), a, screen, doc)
		},
	}
}

// editTarget returns the document named by args: a scratch document, an
// existing file, or a new document bound to a path not yet written.
func editTarget(a *app.Application, args []string) (*document.Document, error) {
	if len(args) == 0 {
		return a.Documents().Create("")
	}
	path := args[0]
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return a.Documents().Create(path)
	}
	return a.OpenDocument(path)
}

func runEditor(ctx context.Context, a *app.Application, screen tcell.Screen, doc *document.Document) error {
	cfg := a.Config()
	ed := ui.New(screen, doc,
		ui.WithView(cfg.DefaultView()),
		ui.WithTheme(ui.NewTheme(cfg.AccentColor(), cfg.SelectionColor())),
		ui.WithSaver(a.SaveDocument),
	)
	if err := ed.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
