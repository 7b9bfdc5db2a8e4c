package document

import (
	"context"
	"errors"
	"fmt"

	"dario.cat/mergo"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/logger"
)

// Ensure OverrideStore implements the interface.
var _ driven.DocumentStore = (*OverrideStore)(nil)

// OverrideStore merges an optional override document over a base
// document on load. Mapping fragments are deep-merged with override
// values winning; any other fragment is replaced. Saves go to the base.
type OverrideStore struct {
	base     driven.DocumentStore
	override driven.DocumentStore
}

// NewOverrideStore wraps base with an override document.
func NewOverrideStore(base, override driven.DocumentStore) *OverrideStore {
	return &OverrideStore{base: base, override: override}
}

// Load reads the base document and applies the override when it exists.
func (s *OverrideStore) Load(ctx context.Context) (*domain.Document, error) {
	doc, err := s.base.Load(ctx)
	if err != nil {
		return nil, err
	}

	override, err := s.override.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("override: %w", err)
	}

	logger.Debug("Applying override %s", s.override.Path())
	if err := Merge(doc, override); err != nil {
		return nil, fmt.Errorf("override %s: %w", s.override.Path(), err)
	}
	return doc, nil
}

// Save writes the document to the base store.
func (s *OverrideStore) Save(ctx context.Context, doc *domain.Document) error {
	return s.base.Save(ctx, doc)
}

// Path returns the base document path.
func (s *OverrideStore) Path() string {
	return s.base.Path()
}

// Merge applies override onto doc in place.
func Merge(doc, override *domain.Document) error {
	for _, handle := range override.Handles() {
		patch, _ := override.Get(handle)
		current, _ := doc.Get(handle)

		dst, dstOK := current.(map[string]any)
		src, srcOK := patch.(map[string]any)
		if !dstOK || !srcOK {
			doc.Set(handle, patch)
			continue
		}

		if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
			return fmt.Errorf("merge %s: %w", handle, err)
		}
		doc.Set(handle, dst)
	}
	return nil
}
