package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration Errors.
	// These abort a run immediately.

	// ErrUnknownMapper indicates a data type names a mapper that is not registered.
	ErrUnknownMapper = errors.New("unknown mapper")

	// ErrDuplicateDataType indicates two data types share a handle.
	ErrDuplicateDataType = errors.New("duplicate data type")

	// ErrDuplicateMapper indicates two mappers share a handle.
	ErrDuplicateMapper = errors.New("duplicate mapper")

	// ErrUnknownDataType indicates a targeted run named a data type that is not registered.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrMalformedDocument indicates a portable document could not be split into fragments.
	ErrMalformedDocument = errors.New("malformed document")

	// Category Errors.
	// These fail a single data type; the run continues.

	// ErrInvalidFragment indicates a fragment or one of its entries has the wrong shape.
	ErrInvalidFragment = errors.New("invalid fragment")

	// ErrResultFinalized indicates an attempt to change a result after it was returned.
	ErrResultFinalized = errors.New("result finalized")
)
