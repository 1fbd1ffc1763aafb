// Package taxonomy holds the fixed grocery category tree used for
// classification. The tree is two levels deep: parent categories owning
// subcategories, each subcategory seeded with example product text used to
// build its anchor embedding.
package taxonomy

import (
	"fmt"
)

// SubCategory is one leaf of the category tree.
type SubCategory struct {
	Name     string
	Parent   string
	Examples string
}

// EmbeddingText returns the text embedded as this subcategory's anchor.
func (s SubCategory) EmbeddingText() string {
	if s.Examples == "" {
		return s.Name
	}
	return s.Name + ": " + s.Examples
}

// ParentCategory is one top-level node of the category tree.
type ParentCategory struct {
	Name string
	Subs []SubCategory
}

// Taxonomy is the flattened, validated category tree.
type Taxonomy struct {
	parents []ParentCategory
	flat    []SubCategory
}

// New builds a Taxonomy from parent nodes. Subcategory names must be unique
// across the whole tree; anchor index order follows parent-then-subcategory
// enumeration order.
func New(parents []ParentCategory) (*Taxonomy, error) {
	seen := make(map[string]string, 64)
	var flat []SubCategory
	for _, p := range parents {
		for _, s := range p.Subs {
			if prev, ok := seen[s.Name]; ok {
				return nil, fmt.Errorf("duplicate subcategory %q (under %q and %q)", s.Name, prev, p.Name)
			}
			seen[s.Name] = p.Name
			s.Parent = p.Name
			flat = append(flat, s)
		}
	}
	return &Taxonomy{parents: parents, flat: flat}, nil
}

// Default returns the built-in grocery taxonomy. Panics only on a broken
// built-in table, which is a programming error.
func Default() *Taxonomy {
	t, err := New(defaultParents())
	if err != nil {
		panic(err)
	}
	return t
}

// Flatten returns the ordered subcategory list, one entry per anchor.
func (t *Taxonomy) Flatten() []SubCategory {
	out := make([]SubCategory, len(t.flat))
	copy(out, t.flat)
	return out
}

// ParentNames returns the fixed set of parent category names in tree order.
func (t *Taxonomy) ParentNames() []string {
	names := make([]string, len(t.parents))
	for i, p := range t.parents {
		names[i] = p.Name
	}
	return names
}

// HasParent reports whether name is one of the parent categories.
func (t *Taxonomy) HasParent(name string) bool {
	for _, p := range t.parents {
		if p.Name == name {
			return true
		}
	}
	return false
}
