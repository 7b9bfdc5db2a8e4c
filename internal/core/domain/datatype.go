package domain

// Built-in data type handles, in dependency order.
const (
	DataTypePlugins         = "plugins"
	DataTypeSites           = "sites"
	DataTypeFields          = "fields"
	DataTypeVolumes         = "volumes"
	DataTypeAssetTransforms = "assetTransforms"
	DataTypeSections        = "sections"
	DataTypeCategoryGroups  = "categoryGroups"
	DataTypeGlobalSets      = "globalSets"
	DataTypeElementIndexes  = "elementIndexes"
)

// DataTypeDescriptor identifies one configuration category.
type DataTypeDescriptor struct {
	// Handle is the unique key of the category in documents and registries.
	Handle string

	// MapperHandle names the mapper the category binds to.
	MapperHandle string

	// Weight orders categories; lower weights are processed first.
	Weight int

	// Edition is the minimum edition the category is available in.
	Edition Edition
}

// Edition is the host installation's licence edition.
type Edition int

// Known editions.
const (
	EditionSolo Edition = iota
	EditionPro
)

// ParseEdition parses an edition name.
func ParseEdition(s string) (Edition, error) {
	switch s {
	case "solo":
		return EditionSolo, nil
	case "pro", "":
		return EditionPro, nil
	default:
		return EditionSolo, ErrInvalidInput
	}
}

// String returns the string representation.
func (e Edition) String() string {
	switch e {
	case EditionSolo:
		return "solo"
	case EditionPro:
		return "pro"
	default:
		return "unknown"
	}
}
