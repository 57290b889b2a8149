package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customizer-console/internal/models"
)

func TestGroupProducts(t *testing.T) {
	allTabs := models.DefaultTabSettings()
	threeD := models.TabSettings{AiEditor: true, Colors: true}
	designs := []models.LayerDesign{
		{ID: "1", SQ: "SQ-100", ProductType: "2d", TabSettings: &allTabs},
		{ID: "2", SQ: "SQ-200", ProductType: "3d", TabSettings: &threeD},
		{ID: "3", SQ: "SQ-100", ProductType: "3d", TabSettings: &threeD},
		{ID: "4", SQ: "SQ-300", ProductType: "2d"},
	}

	products := models.GroupProducts(designs)
	require.Len(t, products, 3)

	// First-seen order, first record's metadata wins.
	assert.Equal(t, "SQ-100", products[0].SQ)
	assert.Equal(t, "2d", products[0].ProductType)
	assert.Equal(t, models.DefaultTabSettings(), products[0].TabSettings)
	assert.Equal(t, "SQ-200", products[1].SQ)
	assert.Equal(t, "3d", products[1].ProductType)
	assert.Equal(t, threeD, products[1].TabSettings)
	// A record without stored tabs falls back to everything enabled.
	assert.Equal(t, "SQ-300", products[2].SQ)
	assert.Equal(t, models.DefaultTabSettings(), products[2].TabSettings)
}

func TestGroupProductsEmpty(t *testing.T) {
	assert.Empty(t, models.GroupProducts(nil))
}

func TestVisibleDesigns(t *testing.T) {
	t.Run("only placeholder renders empty", func(t *testing.T) {
		designs := []models.LayerDesign{{ID: "1", SQ: "SQ-100", DesignName: models.DefaultDesignName}}
		assert.Empty(t, models.VisibleDesigns(designs))
	})

	t.Run("placeholder is hidden, others remain", func(t *testing.T) {
		designs := []models.LayerDesign{
			{ID: "1", SQ: "SQ-100", DesignName: models.DefaultDesignName},
			{ID: "2", SQ: "SQ-100", DesignName: "Summer Print"},
		}
		visible := models.VisibleDesigns(designs)
		require.Len(t, visible, 1)
		assert.Equal(t, "Summer Print", visible[0].DesignName)
	})
}

func TestVisibleUsers(t *testing.T) {
	users := []models.User{
		{ID: "1", Name: "Admin", Role: models.RoleSuperadmin},
		{ID: "2", Name: "Shop Owner", Role: models.RoleUser},
	}
	visible := models.VisibleUsers(users)
	require.Len(t, visible, 1)
	assert.Equal(t, "Shop Owner", visible[0].Name)
}
