package domain

// Config is resolved once per process before the registry is built.
type Config struct {
	// Edition gates which data types are registered.
	Edition Edition

	// Exclude lists data type handles that are never processed.
	Exclude []string

	// Force is the default conflict policy for imports.
	Force bool

	Document DocumentConfig
	Storage  StorageConfig
}

// DocumentConfig locates the portable document on disk.
type DocumentConfig struct {
	// Path is the document file, or the directory when Split is set.
	Path string

	// Split stores one file per data type inside Path.
	Split bool

	// OverridePath is an optional document merged over the loaded one.
	OverridePath string
}

// StorageConfig locates the host environment's record database.
type StorageConfig struct {
	Path string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Edition: EditionPro,
		Document: DocumentConfig{
			Path:         "config/schema.yml",
			OverridePath: "config/override.yml",
		},
		Storage: StorageConfig{
			Path: ".schematic",
		},
	}
}

// Excludes reports whether handle is on the exclusion list.
func (c Config) Excludes(handle string) bool {
	for _, h := range c.Exclude {
		if h == handle {
			return true
		}
	}
	return false
}
