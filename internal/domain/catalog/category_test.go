package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	root, err := NewCategory("Dental", "dental")
	require.NoError(t, err)

	assert.True(t, root.IsRoot())
	assert.Equal(t, 0, root.Level)
	assert.Empty(t, root.Ancestors)
	assert.Equal(t, CategoryStatusActive, root.Status)
}

func TestNewChildCategory(t *testing.T) {
	root, err := NewCategory("Dental", "dental")
	require.NoError(t, err)
	child, err := NewChildCategory("Scalers", "scalers", root)
	require.NoError(t, err)
	grandchild, err := NewChildCategory("Manual Scalers", "manual-scalers", child)
	require.NoError(t, err)

	assert.Equal(t, 1, child.Level)
	require.Len(t, child.Ancestors, 1)
	assert.Equal(t, root.ID, child.Ancestors[0])

	assert.Equal(t, 2, grandchild.Level)
	require.Len(t, grandchild.Ancestors, 2)
	assert.Equal(t, root.ID, grandchild.Ancestors[0])
	assert.Equal(t, child.ID, grandchild.Ancestors[1])

	assert.True(t, root.IsAncestorOf(grandchild))
	assert.True(t, grandchild.IsDescendantOf(root))
	assert.False(t, grandchild.IsAncestorOf(root))
}

func TestCategoryDepthLimit(t *testing.T) {
	parent, err := NewCategory("L0", "l0")
	require.NoError(t, err)
	for i := 1; i < MaxCategoryDepth; i++ {
		parent, err = NewChildCategory("Child", "child", parent)
		require.NoError(t, err)
	}

	_, err = NewChildCategory("Too Deep", "too-deep", parent)
	assert.Error(t, err)
}

func TestCategorySetParent(t *testing.T) {
	root, _ := NewCategory("Root", "root")
	a, _ := NewChildCategory("A", "a", root)
	b, _ := NewChildCategory("B", "b", a)

	t.Run("rejects self as parent", func(t *testing.T) {
		assert.Error(t, a.SetParent(a))
	})

	t.Run("rejects descendant as parent", func(t *testing.T) {
		assert.Error(t, a.SetParent(b))
	})

	t.Run("moves to new parent and recomputes ancestors", func(t *testing.T) {
		other, _ := NewCategory("Other", "other")
		require.NoError(t, a.SetParent(other))
		assert.Equal(t, 1, a.Level)
		require.Len(t, a.Ancestors, 1)
		assert.Equal(t, other.ID, a.Ancestors[0])
	})

	t.Run("promotes to root", func(t *testing.T) {
		require.NoError(t, b.SetParent(nil))
		assert.True(t, b.IsRoot())
		assert.Equal(t, 0, b.Level)
		assert.Empty(t, b.Ancestors)
	})
}

func TestCategoryRecomputeUnder(t *testing.T) {
	root, _ := NewCategory("Root", "root")
	a, _ := NewChildCategory("A", "a", root)
	b, _ := NewChildCategory("B", "b", a)

	newRoot, _ := NewCategory("New Root", "new-root")
	require.NoError(t, a.SetParent(newRoot))
	b.RecomputeUnder(a)

	assert.Equal(t, 2, b.Level)
	require.Len(t, b.Ancestors, 2)
	assert.Equal(t, newRoot.ID, b.Ancestors[0])
	assert.Equal(t, a.ID, b.Ancestors[1])
}
