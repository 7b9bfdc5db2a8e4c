// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The synchronisation engine lives here: DataType variants enumerate the
// live records of one category, Mappers convert records to and from
// portable fragments, the DataTypeRegistry orders categories by
// dependency and the SyncOrchestrator walks it.
package services
