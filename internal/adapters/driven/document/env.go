package document

import (
	"os"
	"regexp"

	"github.com/born05/schematic/internal/logger"
)

var placeholder = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Expander replaces %NAME% placeholders in string values with
// environment variables. Unset variables are left as written.
type Expander struct {
	lookup func(string) (string, bool)
}

// NewExpander creates an expander over the process environment.
func NewExpander() *Expander {
	return &Expander{lookup: os.LookupEnv}
}

// NewExpanderFunc creates an expander over a custom lookup.
func NewExpanderFunc(lookup func(string) (string, bool)) *Expander {
	return &Expander{lookup: lookup}
}

// Expand returns a copy of v with placeholders replaced in every string.
func (e *Expander) Expand(v any) any {
	switch val := v.(type) {
	case string:
		return e.expandString(val)
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = e.Expand(item)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = e.Expand(item)
		}
		return result
	default:
		return v
	}
}

func (e *Expander) expandString(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := e.lookup(name)
		if !ok {
			logger.Warn("Environment variable %s is not set, placeholder kept", name)
			return match
		}
		return value
	})
}
