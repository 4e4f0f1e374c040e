// Package fs stores fetched documents as files on disk.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagetext"
)

// DefaultExtension is the file extension used for stored documents.
const DefaultExtension = ".txt"

// Ensure Store implements pagetext.DocumentStore at compile time.
var _ pagetext.DocumentStore = (*Store)(nil)

// Store writes documents into baseDir/name with atomic update semantics.
// Documents are saved to baseDir/name.tmp and moved into place on Commit,
// so a failed run never leaves a half-written output directory behind.
type Store struct {
	baseDir string
	name    string
	ext     string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithExtension sets the file extension, including the leading dot.
func WithExtension(ext string) StoreOption {
	return func(s *Store) {
		s.ext = ext
	}
}

// NewStore creates a new Store.
func NewStore(baseDir, name string, opts ...StoreOption) *Store {
	s := &Store{baseDir: baseDir, name: name, ext: DefaultExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes doc under the temp directory at the path derived from its
// source address.
func (s *Store) Save(ctx context.Context, doc *pagetext.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.Metadata.SourceID, s.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(FormatDocument(doc)), 0644)
}

// Commit replaces the final directory with the saved documents.
func (s *Store) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved documents.
func (s *Store) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page address to a relative file path rooted at its
// host.
// Example: https://example.com/docs/api → example.com/docs/api.txt
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagetext.Errorf(pagetext.EINVALID, "invalid address %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", pagetext.Errorf(pagetext.EINVALID, "address %q has no host", rawURL)
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	path := strings.TrimPrefix(filepath.Clean("/"+u.Path), "/")

	switch {
	case path == "":
		path = "index"
	case strings.HasSuffix(u.Path, "/"):
		path += "/index"
	}
	return filepath.Join(host, filepath.FromSlash(path)) + ext, nil
}

// FormatDocument renders a document with a frontmatter header.
func FormatDocument(doc *pagetext.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.Metadata.SourceID)
	b.WriteString("\nsimple_id: ")
	b.WriteString(doc.Metadata.SimpleID)
	if doc.Metadata.MirrorBase != "" {
		b.WriteString("\nmirror_base: ")
		b.WriteString(doc.Metadata.MirrorBase)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Text)
	b.WriteString("\n")
	return b.String()
}
