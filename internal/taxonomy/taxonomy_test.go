package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TenParents(t *testing.T) {
	tax := Default()
	assert.Len(t, tax.ParentNames(), 10)
}

func TestDefault_NoDuplicateSubcategories(t *testing.T) {
	tax := Default()
	seen := make(map[string]bool)
	for _, s := range tax.Flatten() {
		assert.False(t, seen[s.Name], "duplicate subcategory %q", s.Name)
		seen[s.Name] = true
	}
}

func TestDefault_AtLeastSixtySubcategories(t *testing.T) {
	tax := Default()
	assert.GreaterOrEqual(t, len(tax.Flatten()), 60)
}

func TestDefault_EveryLeafHasParent(t *testing.T) {
	tax := Default()
	for _, s := range tax.Flatten() {
		assert.True(t, tax.HasParent(s.Parent), "subcategory %q has unknown parent %q", s.Name, s.Parent)
	}
}

func TestDefault_SodaUnderBeverages(t *testing.T) {
	tax := Default()
	var found bool
	for _, s := range tax.Flatten() {
		if s.Name == "Soda & Soft Drinks" {
			found = true
			assert.Equal(t, "Beverages", s.Parent)
			assert.Contains(t, s.EmbeddingText(), "Coke")
			assert.Contains(t, s.EmbeddingText(), "Pepsi")
		}
	}
	assert.True(t, found)
}

func TestDefault_FallbackParentExists(t *testing.T) {
	assert.True(t, Default().HasParent(DefaultFallbackParent))
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]ParentCategory{
		{Name: "A", Subs: []SubCategory{{Name: "X"}}},
		{Name: "B", Subs: []SubCategory{{Name: "X"}}},
	})
	assert.Error(t, err)
}

func TestEmbeddingText(t *testing.T) {
	withExamples := SubCategory{Name: "Milk", Examples: "whole milk, oat milk"}
	assert.Equal(t, "Milk: whole milk, oat milk", withExamples.EmbeddingText())

	bare := SubCategory{Name: "Milk"}
	assert.Equal(t, "Milk", bare.EmbeddingText())
}

func TestFlatten_OrderFollowsTree(t *testing.T) {
	tax, err := New([]ParentCategory{
		{Name: "P1", Subs: []SubCategory{{Name: "a"}, {Name: "b"}}},
		{Name: "P2", Subs: []SubCategory{{Name: "c"}}},
	})
	require.NoError(t, err)

	flat := tax.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "a", flat[0].Name)
	assert.Equal(t, "b", flat[1].Name)
	assert.Equal(t, "c", flat[2].Name)
	assert.Equal(t, "P1", flat[1].Parent)
	assert.Equal(t, "P2", flat[2].Parent)
}
