package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driving"
	"github.com/born05/schematic/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncService = (*SyncOrchestrator)(nil)

// SyncOrchestrator walks the registry in dependency order and applies
// each data type's mapper. One run at a time is the caller's contract.
type SyncOrchestrator struct {
	registry *DataTypeRegistry
	mappers  *MapperRegistry

	mu    sync.RWMutex
	state domain.RunState
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(registry *DataTypeRegistry, mappers *MapperRegistry) *SyncOrchestrator {
	return &SyncOrchestrator{
		registry: registry,
		mappers:  mappers,
	}
}

// DataTypes returns the registered data types in processing order.
func (o *SyncOrchestrator) DataTypes() []domain.DataTypeDescriptor {
	return o.registry.Descriptors()
}

// State returns the state of the current or most recent run.
func (o *SyncOrchestrator) State() domain.RunState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

func (o *SyncOrchestrator) setState(s domain.RunState) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = s
}

// step is one data type of a run with its resolved mapper.
type step struct {
	dataType DataType
	mapper   Mapper
}

// plan selects the data types of a run and resolves their mappers.
// Any failure here is a configuration error and nothing is processed.
func (o *SyncOrchestrator) plan(include, exclude []string) ([]step, error) {
	types, err := o.registry.Select(include, exclude)
	if err != nil {
		return nil, err
	}
	steps := make([]step, 0, len(types))
	for _, dt := range types {
		m, err := o.mappers.Resolve(dt)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{dataType: dt, mapper: m})
	}
	return steps, nil
}

// Export builds a document from the live records of every selected data type.
func (o *SyncOrchestrator) Export(
	ctx context.Context,
	opts driving.ExportOptions,
) (*domain.Document, *domain.AggregateResult, error) {
	steps, err := o.plan(opts.DataTypes, opts.Exclude)
	if err != nil {
		o.setState(domain.RunFailed)
		return nil, nil, fmt.Errorf("export: %w", err)
	}

	o.setState(domain.RunExporting)
	logger.Section("Export")

	doc := domain.NewDocument()
	result := domain.NewAggregateResult()
	defer result.Finalize()
	refs := NewReferences(o.registry)

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			logger.Warn("export cancelled before %s", s.dataType.Handle())
			o.setState(domain.RunFailed)
			return doc, result, err
		}

		fragment, res := o.exportOne(ctx, s, refs)
		doc.Set(s.dataType.Handle(), fragment)
		o.report(res)
		if err := result.Merge(res); err != nil {
			return doc, result, err
		}
	}

	o.setState(domain.RunDone)
	logger.Info("Export complete: %s, %d data types", result.Outcome(), doc.Len())
	return doc, result, nil
}

func (o *SyncOrchestrator) exportOne(ctx context.Context, s step, refs *References) (any, *domain.MapperResult) {
	handle := s.dataType.Handle()

	records, err := s.dataType.Records(ctx)
	if err != nil {
		// Still export the empty fragment so the key stays in the document.
		fragment, res := s.mapper.Export(ctx, nil, refs)
		res = withDataType(res, handle)
		res.Fail(err)
		return fragment, res
	}

	fragment, res := s.mapper.Export(ctx, records, refs)
	res = withDataType(res, handle)
	res.Info("exported %d records", len(records))
	return fragment, res
}

// Import applies a document to the live records of every selected data type.
// Data types absent from the document are skipped.
func (o *SyncOrchestrator) Import(
	ctx context.Context,
	doc *domain.Document,
	opts driving.ImportOptions,
) (*domain.AggregateResult, error) {
	if doc == nil {
		o.setState(domain.RunFailed)
		return nil, fmt.Errorf("import: %w: no document", domain.ErrMalformedDocument)
	}
	steps, err := o.plan(opts.DataTypes, opts.Exclude)
	if err != nil {
		o.setState(domain.RunFailed)
		return nil, fmt.Errorf("import: %w", err)
	}

	o.setState(domain.RunImporting)
	logger.Section("Import")
	if opts.Force {
		logger.Info("Force enabled: conflicting records will be overwritten")
	}

	result := domain.NewAggregateResult()
	defer result.Finalize()
	refs := NewReferences(o.registry)

	for _, s := range steps {
		handle := s.dataType.Handle()
		fragment, ok := doc.Get(handle)
		if !ok {
			logger.Debug("%s not in document, skipped", handle)
			continue
		}

		if err := ctx.Err(); err != nil {
			logger.Warn("import cancelled before %s", handle)
			o.setState(domain.RunFailed)
			return result, err
		}

		res := withDataType(s.mapper.Import(ctx, fragment, opts.Force, refs), handle)
		refs.MarkImported(handle)
		o.report(res)
		if err := result.Merge(res); err != nil {
			return result, err
		}
	}

	o.setState(domain.RunDone)
	logger.Info("Import complete: %s, %d writes", result.Outcome(), result.Writes())
	return result, nil
}

// report traces one data type result.
func (o *SyncOrchestrator) report(res *domain.MapperResult) {
	logger.Info("%s: %d created, %d updated, %d deleted", res.DataType, res.Created, res.Updated, res.Deleted)
	for _, msg := range res.Messages {
		logger.Debug("%s: %s", res.DataType, msg)
	}
	for _, w := range res.Warnings {
		logger.Warn("%s: %s", res.DataType, w)
	}
	for _, err := range res.Errors {
		logger.Error("%s: %v", res.DataType, err)
	}
}

// withDataType stamps a mapper result with the data type it ran for.
// A mapper returning no result is treated as an empty one.
func withDataType(res *domain.MapperResult, handle string) *domain.MapperResult {
	if res == nil {
		return domain.NewMapperResult(handle)
	}
	res.DataType = handle
	return res
}
