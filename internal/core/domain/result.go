package domain

import "fmt"

// MapperResult is the outcome of exporting or importing one data type.
// Errors fail the data type but never stop other data types.
type MapperResult struct {
	// DataType is the handle of the data type this result belongs to.
	DataType string

	// Messages are informational notes.
	Messages []string

	// Warnings are record-level problems that were skipped,
	// such as unresolved references or conflicts left untouched.
	Warnings []string

	// Errors are fatal problems for this data type.
	Errors []error

	// Created, Updated and Deleted count writes made by an import.
	Created int
	Updated int
	Deleted int
}

// NewMapperResult creates an empty result for a data type.
func NewMapperResult(dataType string) *MapperResult {
	return &MapperResult{DataType: dataType}
}

// Info records an informational message.
func (r *MapperResult) Info(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// Warn records a warning.
func (r *MapperResult) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Fail records a fatal error for the data type.
func (r *MapperResult) Fail(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

// Failed returns true if the data type reported any error.
func (r *MapperResult) Failed() bool {
	return len(r.Errors) > 0
}

// Writes returns the number of records created, updated or deleted.
func (r *MapperResult) Writes() int {
	return r.Created + r.Updated + r.Deleted
}

// Outcome is the overall status of a run.
type Outcome int

// Possible run outcomes.
const (
	// OutcomeSynchronized means every data type succeeded without warnings.
	OutcomeSynchronized Outcome = iota

	// OutcomeSynchronizedWithWarnings means every data type succeeded
	// but at least one warning was recorded.
	OutcomeSynchronizedWithWarnings

	// OutcomeFailed means at least one data type failed.
	OutcomeFailed
)

// String returns the string representation.
func (o Outcome) String() string {
	switch o {
	case OutcomeSynchronized:
		return "synchronized"
	case OutcomeSynchronizedWithWarnings:
		return "synchronized with warnings"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AggregateResult collects one MapperResult per processed data type.
// It becomes read-only once finalized.
type AggregateResult struct {
	results   []*MapperResult
	index     map[string]*MapperResult
	finalized bool
}

// NewAggregateResult creates an empty aggregate result.
func NewAggregateResult() *AggregateResult {
	return &AggregateResult{
		index: make(map[string]*MapperResult),
	}
}

// Merge adds a data type result. Merging the same data type twice
// combines both results.
func (a *AggregateResult) Merge(r *MapperResult) error {
	if a.finalized {
		return ErrResultFinalized
	}
	if r == nil {
		return nil
	}

	existing, ok := a.index[r.DataType]
	if !ok {
		a.results = append(a.results, r)
		a.index[r.DataType] = r
		return nil
	}

	existing.Messages = append(existing.Messages, r.Messages...)
	existing.Warnings = append(existing.Warnings, r.Warnings...)
	existing.Errors = append(existing.Errors, r.Errors...)
	existing.Created += r.Created
	existing.Updated += r.Updated
	existing.Deleted += r.Deleted
	return nil
}

// Finalize marks the result read-only.
func (a *AggregateResult) Finalize() {
	a.finalized = true
}

// Finalized returns true once the run has returned the result.
func (a *AggregateResult) Finalized() bool {
	return a.finalized
}

// Results returns the per data type results in processing order.
func (a *AggregateResult) Results() []MapperResult {
	result := make([]MapperResult, len(a.results))
	for i, r := range a.results {
		result[i] = *r
	}
	return result
}

// Result returns the result for one data type.
func (a *AggregateResult) Result(dataType string) (MapperResult, bool) {
	r, ok := a.index[dataType]
	if !ok {
		return MapperResult{}, false
	}
	return *r, true
}

// Success is the AND of every data type's success.
func (a *AggregateResult) Success() bool {
	for _, r := range a.results {
		if r.Failed() {
			return false
		}
	}
	return true
}

// Outcome distinguishes a clean run, a run with warnings and a failed run.
func (a *AggregateResult) Outcome() Outcome {
	if !a.Success() {
		return OutcomeFailed
	}
	if len(a.Warnings()) > 0 {
		return OutcomeSynchronizedWithWarnings
	}
	return OutcomeSynchronized
}

// Warnings returns every warning prefixed with its data type.
func (a *AggregateResult) Warnings() []string {
	var warnings []string
	for _, r := range a.results {
		for _, w := range r.Warnings {
			warnings = append(warnings, r.DataType+": "+w)
		}
	}
	return warnings
}

// Errors returns every error wrapped with its data type.
func (a *AggregateResult) Errors() []error {
	var errs []error
	for _, r := range a.results {
		for _, err := range r.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", r.DataType, err))
		}
	}
	return errs
}

// FailedDataTypes returns the handles of failed data types in order.
func (a *AggregateResult) FailedDataTypes() []string {
	var failed []string
	for _, r := range a.results {
		if r.Failed() {
			failed = append(failed, r.DataType)
		}
	}
	return failed
}

// Writes returns the total number of writes across all data types.
func (a *AggregateResult) Writes() int {
	total := 0
	for _, r := range a.results {
		total += r.Writes()
	}
	return total
}
