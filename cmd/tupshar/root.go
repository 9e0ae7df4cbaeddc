package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/tupshar/internal/app"
	"github.com/dshills/tupshar/internal/config"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	config   string
	logLevel string
	signList string
	strict   bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "tupshar",
		Short: "Editor for lemmatised cuneiform texts",
		Long: `tupshar edits cuneiform texts lemma by lemma. Each lemma carries a
normalisation, a transliteration and a translation; the cuneiform is
rendered from the sign list.

Documents are JSON files and may be xz-compressed (.xz).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "config file (default "+defaultConfigPath()+")")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.signList, "sign-list", "", "sign-list file")
	pf.BoolVar(&g.strict, "strict", false, "reject edits that do not match the cursor mode")

	cmd.AddCommand(
		newNewCmd(g),
		newEditCmd(g),
		newExportCmd(g),
		newRunCmd(g),
		newInfoCmd(),
		newMetaCmd(g),
		newVersionCmd(),
	)
	return cmd
}

func defaultConfigPath() string {
	if path := config.DefaultPath(); path != "" {
		return path
	}
	return "none"
}

// open starts an application for one command. Batch commands never watch
// the sign list.
func (g *globalFlags) open(logOutput io.Writer, watch bool) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath: g.config,
		LogLevel:   g.logLevel,
		SignList:   g.signList,
		Strict:     g.strict,
		NoWatch:    !watch,
		LogOutput:  logOutput,
	})
}
