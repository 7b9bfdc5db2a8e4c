// Package document stores portable documents as YAML.
//
// Adapters:
//   - YAMLCodec: deterministic YAML encoding with %NAME% environment placeholders
//   - FileStore: the whole document in one file
//   - DirStore: one <handle>.yml file per data type
//   - OverrideStore: an optional override document merged over the base on load
//
// Stores work on a go-billy filesystem, so tests run against memfs.
package document
