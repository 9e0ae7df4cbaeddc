package document

import "github.com/dshills/tupshar/internal/cdl"

// Default metadata values of a new document.
const (
	DefaultTitle   = "New Document"
	DefaultProject = "Unassigned"
)

// Metadata is the catalogue entry of a document.
type Metadata struct {
	ID            cdl.TextID `json:"id"`
	DisplayName   string     `json:"displayName"`
	AncientAuthor string     `json:"ancientAuthor,omitempty"`
	Title         string     `json:"title"`
	Project       string     `json:"project"`
}

// NewMetadata returns the metadata of a new document with the given id.
func NewMetadata(id cdl.TextID) Metadata {
	return Metadata{
		ID:          id,
		DisplayName: DefaultTitle,
		Title:       DefaultTitle,
		Project:     DefaultProject,
	}
}
