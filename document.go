package pagetext

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// SourceTypeHTML is the source type of documents built from fetched pages.
const SourceTypeHTML = "html"

// Document is the cleaned text of a fetched page plus its provenance.
type Document struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes where a Document came from.
type Metadata struct {
	SourceID   string `json:"source_id"`
	SourceType string `json:"source_type"`
	SimpleID   string `json:"simple_id"`
	MirrorBase string `json:"mirror_base,omitempty"`
}

// NewDocument builds a Document for text fetched from url.
// mirrorBase is recorded only when non-empty.
func NewDocument(url, text, mirrorBase string) *Document {
	return &Document{
		Text: text,
		Metadata: Metadata{
			SourceID:   url,
			SourceType: SourceTypeHTML,
			SimpleID:   SimpleID(url),
			MirrorBase: mirrorBase,
		},
	}
}

// DocumentStore persists documents from a run. Saved documents become
// visible only after Commit; Abort discards them.
type DocumentStore interface {
	Save(ctx context.Context, doc *Document) error
	Commit() error
	Abort() error
}

// SimpleID returns a short stable identifier derived from url alone.
func SimpleID(url string) string {
	return strconv.FormatUint(xxhash.Sum64String(url), 16)
}
