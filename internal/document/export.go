package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// ExportedText is the plain text export of a document.
type ExportedText struct {
	Cuneiform       string `json:"cuneiform"`
	Transliteration string `json:"transliteration"`
	Normalisation   string `json:"normalisation"`
	Translation     string `json:"translation"`
}

// Exported returns the four texts of the document.
func (d *Document) Exported() ExportedText {
	return ExportedText{
		Cuneiform:       d.Cuneiform(),
		Transliteration: d.Transliteration(),
		Normalisation:   d.Normalisation(),
		Translation:     d.translation,
	}
}

// ExportText returns the JSON text export.
func (d *Document) ExportText() ([]byte, error) {
	data, err := json.MarshalIndent(d.Exported(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return data, nil
}

var htmlExport = template.Must(template.New("export").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Author}}
<meta name="author" content="{{.Author}}">
{{- end}}
<style>
body { font-family: Helvetica, sans-serif; }
.cuneiform { font-family: "CuneiformNAOutline Medium", "Noto Sans Cuneiform", serif; }
</style>
</head>
<body>
<section class="cuneiform">
{{- range lines .Text.Cuneiform}}
<p>{{.}}</p>
{{- end}}
</section>
<section class="transliteration">
{{- range lines .Text.Transliteration}}
<p>{{.}}</p>
{{- end}}
</section>
<section class="normalisation">
{{- range lines .Text.Normalisation}}
<p>{{.}}</p>
{{- end}}
</section>
<section class="translation">
<p>{{.Text.Translation}}</p>
</section>
</body>
</html>
`))

// ExportHTML returns a rich document with the cuneiform set in its own font
// and the title and ancient author in the head.
func (d *Document) ExportHTML() ([]byte, error) {
	var buf bytes.Buffer
	err := htmlExport.Execute(&buf, struct {
		Title  string
		Author string
		Text   ExportedText
	}{
		Title:  d.meta.Title,
		Author: d.meta.AncientAuthor,
		Text:   d.Exported(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExport, err)
	}
	return buf.Bytes(), nil
}
