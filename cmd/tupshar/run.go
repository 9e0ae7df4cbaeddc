package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "run <file> <script.lua>",
		Short: "Run a Lua script against a document",
		Long: `Run executes a Lua script with the tup module bound to the document. The
whole script is one undo step; a failing script leaves the document as it
was. Changes are written only with --save.`,
		Args: cobra.ExactArgs(2),
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
			if err := a.RunScript(cmd.Context(), doc, args[1], cmd.OutOrStdout()); err != nil {
				return err
			}

			if !doc.IsModified() {
				return nil
			}
			if !save {
				cmd.PrintErrln("document changed but not saved; pass --save to write it")
				return nil
			}
			return a.SaveDocument(doc)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the document after the script succeeds")
	return cmd
}
