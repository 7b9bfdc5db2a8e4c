// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: schematic.toml configuration storage
package file
