package questions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arens/quizdeck/internal/questions"
)

func TestFindGroup(t *testing.T) {
	g, ok := questions.FindGroup("science")
	require.True(t, ok)
	assert.Equal(t, "Science", g.Name)

	_, ok = questions.FindGroup("cooking")
	assert.False(t, ok)
}

func TestFindSubcategory(t *testing.T) {
	g, sub, ok := questions.FindSubcategory("sports-cricket")
	require.True(t, ok)
	assert.Equal(t, "sports", g.ID)
	assert.Equal(t, "Cricket (Local)", sub.Name)

	local, ok := sub.Provenance.(questions.Local)
	require.True(t, ok)
	assert.Equal(t, "data/questions-sports-cricket.json", local.Path)

	_, _, ok = questions.FindSubcategory("sports-curling")
	assert.False(t, ok)
}

func TestCatalog_RemoteSubcategoriesCarryAPICategory(t *testing.T) {
	_, sub, ok := questions.FindSubcategory("gk-mixed-api")
	require.True(t, ok)

	remote, ok := sub.Provenance.(questions.Remote)
	require.True(t, ok)
	assert.Equal(t, 9, remote.APICategoryID)
}

func TestCatalog_UniqueSubcategoryIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, g := range questions.Groups {
		require.NotEmpty(t, g.Subcategories, "group %s", g.ID)
		for _, sub := range g.Subcategories {
			assert.False(t, seen[sub.ID], "duplicate id %s", sub.ID)
			seen[sub.ID] = true
		}
	}
}
