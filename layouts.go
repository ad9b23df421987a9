package lessondeck

import "github.com/alnah/go-lessondeck/internal/archetype"

// Layouts lists every registered layout, sorted by id, with the content
// fields it requires. "a|b" means one of a or b; "list[].field" means every
// entry of list needs field.
func Layouts() []LayoutInfo {
	kinds := archetype.Kinds()
	out := make([]LayoutInfo, len(kinds))
	for i, k := range kinds {
		out[i] = LayoutInfo{ID: string(k), Required: archetype.Required(k)}
	}
	return out
}

// IsLayout reports whether id names a registered layout.
func IsLayout(id string) bool {
	return archetype.Known(archetype.Kind(id))
}
