// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecordStore: Read/write access to one category of live records
//   - ElementIndexStore: Element index settings per element type
//   - Environment: One store per category of the host installation
//   - DocumentStore: Portable document persistence
//   - DocumentCodec: Portable document encoding
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
