package domain

// Record is a live configuration record owned by the host environment.
// RecordID is transient and differs between environments; NaturalKey is
// stable and is what portable documents use to identify a record.
type Record interface {
	RecordID() string
	NaturalKey() string
}

// FieldLayoutTab groups fields on one tab of a field layout.
type FieldLayoutTab struct {
	Name     string
	FieldIDs []string
}

// FieldLayout is an ordered list of tabs. Tab and field order are significant.
type FieldLayout []FieldLayoutTab

// SiteSettings holds the per-site configuration of a section or category group.
type SiteSettings struct {
	SiteID    string
	Enabled   bool
	HasURLs   bool
	URIFormat string
	Template  string
}
