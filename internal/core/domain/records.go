package domain

// Plugin is an installed plugin.
type Plugin struct {
	ID       string
	Handle   string
	Name     string
	Version  string
	Enabled  bool
	Settings map[string]any
}

func (p Plugin) RecordID() string   { return p.ID }
func (p Plugin) NaturalKey() string { return p.Handle }

// WithID returns a copy of p carrying id.
func (p Plugin) WithID(id string) Plugin { p.ID = id; return p }

// Site is a site of a multi-site installation.
type Site struct {
	ID        string
	Handle    string
	Name      string
	Language  string
	BaseURL   string
	HasURLs   bool
	Primary   bool
	SortOrder int
}

func (s Site) RecordID() string   { return s.ID }
func (s Site) NaturalKey() string { return s.Handle }

// WithID returns a copy of s carrying id.
func (s Site) WithID(id string) Site { s.ID = id; return s }

// Volume is an asset volume.
type Volume struct {
	ID          string
	Handle      string
	Name        string
	Type        string
	HasURLs     bool
	URL         string
	Settings    map[string]any
	FieldLayout FieldLayout
}

func (v Volume) RecordID() string   { return v.ID }
func (v Volume) NaturalKey() string { return v.Handle }

// WithID returns a copy of v carrying id.
func (v Volume) WithID(id string) Volume { v.ID = id; return v }

// AssetTransform is a named image transform.
type AssetTransform struct {
	ID       string
	Handle   string
	Name     string
	Mode     string
	Position string
	Width    int
	Height   int
	Format   string
	Quality  int
}

func (a AssetTransform) RecordID() string   { return a.ID }
func (a AssetTransform) NaturalKey() string { return a.Handle }

// WithID returns a copy of a carrying id.
func (a AssetTransform) WithID(id string) AssetTransform { a.ID = id; return a }

// Field is a custom field definition.
// SiteIDs limits the field to the listed sites; empty means all sites.
type Field struct {
	ID                string
	Handle            string
	Name              string
	Group             string
	Type              string
	Instructions      string
	TranslationMethod string
	Settings          map[string]any
	SiteIDs           []string
}

func (f Field) RecordID() string   { return f.ID }
func (f Field) NaturalKey() string { return f.Handle }

// WithID returns a copy of f carrying id.
func (f Field) WithID(id string) Field { f.ID = id; return f }

// Section is a content type definition (single, channel or structure).
type Section struct {
	ID           string
	Handle       string
	Name         string
	Type         string
	MaxLevels    int
	SiteSettings []SiteSettings
	FieldLayout  FieldLayout
}

func (s Section) RecordID() string   { return s.ID }
func (s Section) NaturalKey() string { return s.Handle }

// WithID returns a copy of s carrying id.
func (s Section) WithID(id string) Section { s.ID = id; return s }

// CategoryGroup is a category group definition.
type CategoryGroup struct {
	ID           string
	Handle       string
	Name         string
	MaxLevels    int
	SiteSettings []SiteSettings
	FieldLayout  FieldLayout
}

func (c CategoryGroup) RecordID() string   { return c.ID }
func (c CategoryGroup) NaturalKey() string { return c.Handle }

// WithID returns a copy of c carrying id.
func (c CategoryGroup) WithID(id string) CategoryGroup { c.ID = id; return c }

// GlobalSet is a global set definition.
type GlobalSet struct {
	ID          string
	Handle      string
	Name        string
	FieldLayout FieldLayout
}

func (g GlobalSet) RecordID() string   { return g.ID }
func (g GlobalSet) NaturalKey() string { return g.Handle }

// WithID returns a copy of g carrying id.
func (g GlobalSet) WithID(id string) GlobalSet { g.ID = id; return g }

// ElementIndexSource is one source shown in an element index.
// Key has the form "<kind>:<id>" (e.g. "section:7f3c...") or a fixed
// key such as "*" or "singles".
type ElementIndexSource struct {
	Key             string
	Heading         string
	TableAttributes []string
}

// ElementIndex holds the index settings of one element type.
// Element types are defined by code, so the element type is its own key.
type ElementIndex struct {
	ElementType string
	Sources     []ElementIndexSource
}

func (e ElementIndex) RecordID() string   { return e.ElementType }
func (e ElementIndex) NaturalKey() string { return e.ElementType }
