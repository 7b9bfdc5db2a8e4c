package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
	"github.com/born05/schematic/internal/logger"
)

// Mapper converts the records of one category to and from portable fragments.
type Mapper interface {
	// Handle identifies the mapper in the MapperRegistry.
	Handle() string

	// Export converts live records into a fragment. Reference lookups that
	// fail are warnings and the reference is omitted.
	Export(ctx context.Context, records []domain.Record, refs *References) (any, *domain.MapperResult)

	// Import applies a fragment to live records. Importing a fragment that
	// matches the live state makes no writes and records no warnings.
	Import(ctx context.Context, fragment any, force bool, refs *References) *domain.MapperResult
}

// errSkipEntry tells the importer an entry was already reported and must be skipped.
var errSkipEntry = errors.New("entry skipped")

// entry is one natural-key-identified item of a fragment.
type entry struct {
	key    string
	index  int
	values domain.Values
}

// keyedEntries splits a mapping fragment of the form {key: {...}}.
// Entries come back sorted by key so imports are deterministic.
func keyedEntries(fragment any) ([]entry, error) {
	if fragment == nil {
		return nil, nil
	}
	m, ok := domain.AsValues(fragment)
	if !ok {
		return nil, fmt.Errorf("%w: expected a mapping, got %T", domain.ErrInvalidFragment, fragment)
	}

	entries := make([]entry, 0, len(m))
	for i, key := range domain.SortedKeys(m) {
		values, ok := domain.AsValues(m[key])
		if !ok {
			if m[key] != nil {
				return nil, fmt.Errorf("%w: %q: expected a mapping, got %T", domain.ErrInvalidFragment, key, m[key])
			}
			values = domain.Values{}
		}
		entries = append(entries, entry{key: key, index: i, values: values})
	}
	return entries, nil
}

// listEntries splits a sequence fragment of the form [{keyField: ..., ...}].
func listEntries(fragment any, keyField string) ([]entry, error) {
	if fragment == nil {
		return nil, nil
	}
	list, ok := fragment.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a sequence, got %T", domain.ErrInvalidFragment, fragment)
	}

	entries := make([]entry, 0, len(list))
	for i, item := range list {
		values, ok := domain.AsValues(item)
		if !ok {
			return nil, fmt.Errorf("%w: item %d: expected a mapping, got %T", domain.ErrInvalidFragment, i, item)
		}
		key := values.String(keyField)
		if key == "" {
			return nil, fmt.Errorf("%w: item %d: missing %q", domain.ErrInvalidFragment, i, keyField)
		}
		entries = append(entries, entry{key: key, index: i, values: values})
	}
	return entries, nil
}

// castRecords converts the records a DataType listed into T.
func castRecords[T domain.Record](records []domain.Record) ([]T, error) {
	result := make([]T, 0, len(records))
	for _, r := range records {
		t, ok := r.(T)
		if !ok {
			var zero T
			return nil, fmt.Errorf("%w: expected %T record, got %T", domain.ErrInvalidInput, zero, r)
		}
		result = append(result, t)
	}
	return result, nil
}

// exportKeyed builds a mapping fragment keyed by natural key.
// The fragment is never nil so empty categories stay present in documents.
func exportKeyed[T domain.Record](
	records []domain.Record,
	res *domain.MapperResult,
	encode func(T) map[string]any,
) map[string]any {
	fragment := make(map[string]any, len(records))

	typed, err := castRecords[T](records)
	if err != nil {
		res.Fail(err)
		return fragment
	}
	for _, rec := range typed {
		if _, dup := fragment[rec.NaturalKey()]; dup {
			res.Warn("duplicate handle %q, later record skipped", rec.NaturalKey())
			continue
		}
		fragment[rec.NaturalKey()] = encode(rec)
	}
	return fragment
}

// importer applies fragment entries to one record store.
type importer[T domain.Record] struct {
	// noun names a record in messages ("site", "field").
	noun  string
	store driven.RecordStore[T]

	// decode builds the desired record from an entry. Returning
	// errSkipEntry skips the entry without failing the data type.
	decode func(ctx context.Context, e entry, res *domain.MapperResult) (T, error)

	// withID carries the live record's ID onto the desired record.
	withID func(T, string) T

	// canonical, when set, is applied to both sides before diffing.
	canonical func(T) T

	// prunable, when set, enables deletion of absent records on forced
	// imports; it reports whether a given record may be deleted.
	prunable func(T) bool
}

// diffOptions define structural equality for records: nil and empty
// collections are equal and settings maps compare after normalisation.
// The transformer only runs when EquateEmpty does not apply, since cmp
// rejects two options matching the same value.
var diffOptions = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmp.FilterValues(func(x, y map[string]any) bool {
		return len(x) > 0 || len(y) > 0
	}, cmp.Transformer("normalize", domain.NormalizeMap)),
}

// run applies entries. Live records are matched by natural key.
func (im importer[T]) run(ctx context.Context, entries []entry, force bool, res *domain.MapperResult) {
	live, err := im.store.List(ctx)
	if err != nil {
		res.Fail(fmt.Errorf("list %ss: %w", im.noun, err))
		return
	}

	byKey := make(map[string]T, len(live))
	for _, rec := range live {
		byKey[rec.NaturalKey()] = rec
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.key] {
			res.Warn("duplicate %s %q in document, skipped", im.noun, e.key)
			continue
		}
		seen[e.key] = true

		desired, err := im.decode(ctx, e, res)
		if errors.Is(err, errSkipEntry) {
			continue
		}
		if err != nil {
			res.Fail(fmt.Errorf("%s %q: %w", im.noun, e.key, err))
			continue
		}

		current, exists := byKey[e.key]
		if !exists {
			if _, err := im.store.Save(ctx, desired); err != nil {
				res.Fail(fmt.Errorf("create %s %q: %w", im.noun, e.key, err))
				continue
			}
			res.Created++
			logger.Debug("created %s %q", im.noun, e.key)
			continue
		}

		desired = im.withID(desired, current.RecordID())
		diff := im.diff(current, desired)
		if diff == "" {
			continue
		}
		if !force {
			res.Warn("%s %q differs from the document, left unchanged", im.noun, e.key)
			logger.Debug("%s %q diff (-live +document):\n%s", im.noun, e.key, diff)
			continue
		}
		if _, err := im.store.Save(ctx, desired); err != nil {
			res.Fail(fmt.Errorf("update %s %q: %w", im.noun, e.key, err))
			continue
		}
		res.Updated++
		logger.Debug("updated %s %q", im.noun, e.key)
	}

	if im.prunable == nil || !force {
		return
	}
	for _, rec := range live {
		if seen[rec.NaturalKey()] {
			continue
		}
		if !im.prunable(rec) {
			res.Warn("%s %q is not in the document but cannot be deleted", im.noun, rec.NaturalKey())
			continue
		}
		if err := im.store.Delete(ctx, rec.RecordID()); err != nil {
			res.Fail(fmt.Errorf("delete %s %q: %w", im.noun, rec.NaturalKey(), err))
			continue
		}
		res.Deleted++
		logger.Debug("deleted %s %q", im.noun, rec.NaturalKey())
	}
}

func (im importer[T]) diff(current, desired T) string {
	if im.canonical != nil {
		current = im.canonical(current)
		desired = im.canonical(desired)
	}
	return cmp.Diff(current, desired, diffOptions...)
}

// fragmentError fails a result for a fragment that could not be split.
func fragmentError(res *domain.MapperResult, err error) *domain.MapperResult {
	res.Fail(err)
	return res
}
