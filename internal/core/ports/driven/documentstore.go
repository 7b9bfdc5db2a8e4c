package driven

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
)

// DocumentStore persists portable documents.
type DocumentStore interface {
	// Load reads the document.
	// Returns domain.ErrNotFound if no document has been saved.
	Load(ctx context.Context) (*domain.Document, error)

	// Save writes the document, replacing any previous one.
	Save(ctx context.Context, doc *domain.Document) error

	// Path returns the location of the document.
	Path() string
}

// DocumentCodec converts documents to and from bytes.
type DocumentCodec interface {
	// Encode serialises a document deterministically.
	Encode(doc *domain.Document) ([]byte, error)

	// Decode parses a document.
	// Returns an error wrapping domain.ErrMalformedDocument when the
	// input cannot be split into fragments.
	Decode(data []byte) (*domain.Document, error)
}
