package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/dshills/tupshar/internal/document"
)

// Envelope paths read by info.
const (
	pathLemmaRefs   = `text.cdl.#(node=="l")#.ref`
	pathTranslation = "translation"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Summarise a document without loading it",
		Long: `Info reads the metadata and counts the lemmas of a document file. The file
is not decoded, so info works without a sign list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readEnvelope(args[0])
			if err != nil {
				return err
			}

			res := gjson.GetManyBytes(data,
				"metadata.id",
				"metadata.displayName",
				"metadata.title",
				"metadata.ancientAuthor",
				"metadata.project",
				pathLemmaRefs,
				pathTranslation,
			)
			refs := res[5].Array()

			printField(cmd, "id", res[0].String())
			printField(cmd, "display name", res[1].String())
			printField(cmd, "title", res[2].String())
			printField(cmd, "author", res[3].String())
			printField(cmd, "project", res[4].String())
			printField(cmd, "lemmas", fmt.Sprint(len(refs)))
			printField(cmd, "lines", fmt.Sprint(countLines(refs)))
			printField(cmd, "translation", fmt.Sprintf("%d chars", len([]rune(res[6].String()))))
			return nil
		},
	}
}

// readEnvelope reads path and checks that it holds a JSON document.
func readEnvelope(path string) ([]byte, error) {
	data, err := document.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) || !gjson.GetBytes(data, "metadata.id").Exists() {
		return nil, fmt.Errorf("%w: %s", document.ErrBadData, path)
	}
	return data, nil
}

func printField(cmd *cobra.Command, name, value string) {
	if value == "" {
		value = "-"
	}
	cmd.Printf("%-13s %s\n", name+":", value)
}

// countLines counts the distinct line numbers of lemma references of the
// form "TEXTID.LINE.POSITION".
func countLines(refs []gjson.Result) int {
	seen := make(map[string]struct{})
	for _, r := range refs {
		parts := strings.Split(r.String(), ".")
		if len(parts) < 3 {
			continue
		}
		seen[parts[len(parts)-2]] = struct{}{}
	}
	return len(seen)
}
