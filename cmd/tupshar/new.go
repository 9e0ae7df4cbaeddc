package main

import (
	"github.com/spf13/cobra"
)

type newFlags struct {
	title       string
	displayName string
	author      string
	project     string
}

func newNewCmd(g *globalFlags) *cobra.Command {
	f := &newFlags{}
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty document",
		Long: `Create an empty document at the given path. An existing file is never
overwritten. With save.compress enabled the path gains an .xz extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, g, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.title, "title", "", "document title")
	cmd.Flags().StringVar(&f.displayName, "display-name", "", "display name")
	cmd.Flags().StringVar(&f.author, "author", "", "ancient author")
	cmd.Flags().StringVar(&f.project, "project", "", "project (default from config)")
	return cmd
}

func runNew(cmd *cobra.Command, g *globalFlags, f *newFlags, path string) error {
	a, err := g.open(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.NewDocument(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") || flags.Changed("display-name") || flags.Changed("author") || flags.Changed("project") {
		meta := doc.Metadata()
		if flags.Changed("title") {
			meta.Title = f.title
		}
		if flags.Changed("display-name") {
			meta.DisplayName = f.displayName
		}
		if flags.Changed("author") {
			meta.AncientAuthor = f.author
		}
		if flags.Changed("project") {
			meta.Project = f.project
		}
		doc.SetMetadata(meta)
		if err := a.SaveDocument(doc); err != nil {
			return err
		}
	}

	cmd.Printf("created %s (%s)\n", doc.Path(), doc.TextID())
	return nil
}
