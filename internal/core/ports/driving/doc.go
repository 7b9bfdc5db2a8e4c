// Package driving defines interfaces that external actors (CLI, tests) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
//   - SyncService: export and import runs over the data type registry
//   - SettingsService: resolved configuration and its updates
//
// Implementations of these interfaces live in internal/core/services.
package driving
