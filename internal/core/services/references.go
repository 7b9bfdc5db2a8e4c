package services

import (
	"context"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/logger"
)

// References resolves cross-category references during one run.
// Live records are indexed by natural key and by transient ID, lazily,
// per data type. Marking a data type imported drops its index so later
// data types see the records it created.
type References struct {
	registry *DataTypeRegistry
	indexes  map[string]*referenceIndex
	imported map[string]bool
}

type referenceIndex struct {
	idByKey map[string]string
	keyByID map[string]string
}

// NewReferences creates an empty reference context over a registry.
func NewReferences(registry *DataTypeRegistry) *References {
	return &References{
		registry: registry,
		indexes:  make(map[string]*referenceIndex),
		imported: make(map[string]bool),
	}
}

// ID returns the transient ID of the record of dataType with natural key key.
func (r *References) ID(ctx context.Context, dataType, key string) (string, bool) {
	id, ok := r.index(ctx, dataType).idByKey[key]
	return id, ok
}

// Key returns the natural key of the record of dataType with transient ID id.
func (r *References) Key(ctx context.Context, dataType, id string) (string, bool) {
	key, ok := r.index(ctx, dataType).keyByID[id]
	return key, ok
}

// MarkImported records that dataType has been imported in this run.
func (r *References) MarkImported(dataType string) {
	r.imported[dataType] = true
	delete(r.indexes, dataType)
}

// Imported reports whether dataType has been imported in this run.
func (r *References) Imported(dataType string) bool {
	return r.imported[dataType]
}

func (r *References) index(ctx context.Context, dataType string) *referenceIndex {
	if idx, ok := r.indexes[dataType]; ok {
		return idx
	}

	idx := &referenceIndex{
		idByKey: make(map[string]string),
		keyByID: make(map[string]string),
	}
	r.indexes[dataType] = idx

	if r.registry == nil {
		return idx
	}
	dt, err := r.registry.Get(dataType)
	if err != nil {
		logger.Debug("references: %v", err)
		return idx
	}
	records, err := dt.Records(ctx)
	if err != nil {
		logger.Warn("references: %v", err)
		return idx
	}
	for _, rec := range records {
		idx.idByKey[rec.NaturalKey()] = rec.RecordID()
		idx.keyByID[rec.RecordID()] = rec.NaturalKey()
	}
	return idx
}

// resolveKeys maps transient IDs to natural keys. Unresolved IDs are
// warned about and omitted.
func (r *References) resolveKeys(
	ctx context.Context,
	dataType string,
	ids []string,
	res *domain.MapperResult,
	owner string,
) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		key, ok := r.Key(ctx, dataType, id)
		if !ok {
			res.Warn("%s: referenced %s record %q not found, omitted", owner, dataType, id)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// resolveIDs maps natural keys to transient IDs. Unresolved keys are
// warned about and dropped. A data type not imported in this run is
// named in the warning.
func (r *References) resolveIDs(
	ctx context.Context,
	dataType string,
	keys []string,
	res *domain.MapperResult,
	owner string,
) []string {
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		id, ok := r.ID(ctx, dataType, key)
		if !ok && !r.Imported(dataType) {
			res.Warn("%s: unresolved %s reference %q (%s not imported in this run), skipped", owner, dataType, key, dataType)
			continue
		}
		if !ok {
			res.Warn("%s: unresolved %s reference %q, skipped", owner, dataType, key)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
