package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tupshar/internal/app"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a document as text or HTML",
		Long: `Export writes the four views of a document. The text format is a JSON
object with cuneiform, transliteration, normalisation and translation
fields; the html format is a standalone page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.OpenDocument(args[0])
			if err != nil {
				return err
			}
			data, err := a.Export(doc, format)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			cmd.Printf("exported %s to %s\n", args[0], out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", app.FormatText, "export format: text or html")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
