package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tupshar/internal/document"
)

var (
	errUnknownField  = errors.New("unknown metadata field")
	errReadOnlyField = errors.New("metadata field is read-only")
)

// metaFields maps metadata field names to whether they may be changed.
var metaFields = map[string]bool{
	"id":            false,
	"displayName":   true,
	"title":         true,
	"ancientAuthor": true,
	"project":       true,
}

// mirrored lists envelope paths that repeat a metadata field.
var mirrored = map[string]string{
	"project": "text.project",
}

func fieldNames() string {
	names := make([]string, 0, len(metaFields))
	for name := range metaFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func checkField(field string, write bool) error {
	editable, ok := metaFields[field]
	if !ok {
		return fmt.Errorf("%w %q (known: %s)", errUnknownField, field, fieldNames())
	}
	if write && !editable {
		return fmt.Errorf("%w: %s", errReadOnlyField, field)
	}
	return nil
}

func newMetaCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Read or change document metadata",
		Long:  "Metadata fields: " + fieldNames() + ". The id is fixed at creation.",
	}
	cmd.AddCommand(newMetaGetCmd(), newMetaSetCmd(g))
	return cmd
}

func newMetaGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <field>",
		Short: "Print one metadata field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, field := args[0], args[1]
			if err := checkField(field, false); err != nil {
				return err
			}
			data, err := readEnvelope(path)
			if err != nil {
				return err
			}
			cmd.Println(gjson.GetBytes(data, "metadata."+field).String())
			return nil
		},
	}
}

func newMetaSetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <field> <value>",
		Short: "Change one metadata field in place",
		Long: `Set patches a single metadata field and leaves the rest of the file as it
is. The patched file must still decode as a document.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, field, value := args[0], args[1], args[2]
			if err := checkField(field, true); err != nil {
				return err
			}
			data, err := readEnvelope(path)
			if err != nil {
				return err
			}

			patched, err := sjson.SetBytes(data, "metadata."+field, value)
			if err == nil {
				if mirror, ok := mirrored[field]; ok {
					patched, err = sjson.SetBytes(patched, mirror, value)
				}
			}
			if err != nil {
				return fmt.Errorf("patch %s: %w", path, err)
			}

			a, err := g.open(cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := document.Decode(patched, a.Signs()); err != nil {
				return fmt.Errorf("patch %s: %w", path, err)
			}

			if err := document.WriteFile(path, patched); err != nil {
				return err
			}
			cmd.Printf("%s: %s = %q\n", path, field, value)
			return nil
		},
	}
}
