// Package domain defines the core entities for schematic.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A live configuration record (site, field, section, ...)
//   - Document: The portable, declarative form of a whole environment
//   - MapperResult: The outcome of exporting or importing one data type
//   - AggregateResult: The outcome of a whole run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
