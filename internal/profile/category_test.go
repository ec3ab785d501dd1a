package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesOrder(t *testing.T) {
	labels := []string{}
	for _, c := range Categories() {
		labels = append(labels, c.String())
	}
	assert.Equal(t, []string{"Desktop", "Favourites", "Documents", "Outlook", "Pictures", "Apollo"}, labels)
}

func TestParseCategory(t *testing.T) {
	t.Run("labels round trip", func(t *testing.T) {
		for _, c := range Categories() {
			got, err := ParseCategory(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	})

	t.Run("case and alias", func(t *testing.T) {
		got, err := ParseCategory("  outlook ")
		require.NoError(t, err)
		assert.Equal(t, Outlook, got)

		got, err = ParseCategory("Favorites")
		require.NoError(t, err)
		assert.Equal(t, Favourites, got)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseCategory("Downloads")
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})
}

func TestSelection(t *testing.T) {
	sel := NewSelection()
	assert.Empty(t, sel.Ordered())
	assert.Equal(t, 0, sel.Len())

	sel.Set(Apollo, true)
	sel.Set(Desktop, true)
	assert.True(t, sel.Toggle(Documents))
	assert.False(t, sel.Toggle(Documents))

	assert.Equal(t, []Category{Desktop, Apollo}, sel.Ordered())
	assert.Equal(t, 2, sel.Len())
	assert.True(t, sel.Has(Apollo))
	assert.False(t, sel.Has(Outlook))
}

func TestParseCategories(t *testing.T) {
	sel, err := ParseCategories([]string{"pictures", "Desktop", "desktop"})
	require.NoError(t, err)
	assert.Equal(t, []Category{Desktop, Pictures}, sel.Ordered())

	_, err = ParseCategories([]string{"Desktop", "nope"})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
