package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customizer-console/internal/httpserver/handlers"
	"customizer-console/internal/models"
)

func TestListProducts(t *testing.T) {
	fake := newFakeUpstream(t)
	allTabs := models.DefaultTabSettings()
	fake.respondJSON(http.MethodGet, "/api/layerdesigns", []models.LayerDesign{
		{ID: "d1", SQ: "SQ-100", DesignName: models.DefaultDesignName, ProductType: "2d", TabSettings: &allTabs},
		{ID: "d2", SQ: "SQ-100", DesignName: "Summer Print", ProductType: "2d", TabSettings: &allTabs},
		{ID: "d3", SQ: "SQ-200", DesignName: models.DefaultDesignName, ProductType: "3d"},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/console/products", nil), superadminSession())
	w := httptest.NewRecorder()
	handlers.ListProducts(fake.client(), discardLogger()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	products := decodeEnvelope[[]models.Product](t, w)
	require.Len(t, products, 2)
	assert.Equal(t, "SQ-100", products[0].SQ)
	assert.Equal(t, "2d", products[0].ProductType)
	assert.Equal(t, "SQ-200", products[1].SQ)
	assert.Equal(t, "3d", products[1].ProductType)
}

func TestCreateProduct(t *testing.T) {
	t.Run("seeds the placeholder design then refetches", func(t *testing.T) {
		fake := newFakeUpstream(t)
		fake.respondJSON(http.MethodGet, "/api/layerdesigns", []models.LayerDesign{})
		fake.respondOK(http.MethodPost, "/api/layerdesigns")

		body := bytes.NewBufferString(`{"sq":"SQ-300","productType":"3d"}`)
		req := withSession(httptest.NewRequest(http.MethodPost, "/console/products", body), superadminSession())
		w := httptest.NewRecorder()
		handlers.CreateProduct(fake.client(), discardLogger()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, fake.count(http.MethodPost, "/api/layerdesigns"))
		assert.Equal(t, 1, fake.count(http.MethodGet, "/api/layerdesigns"))

		var created models.LayerDesign
		require.NoError(t, json.Unmarshal(fake.lastBody(http.MethodPost, "/api/layerdesigns"), &created))
		assert.Equal(t, "SQ-300", created.SQ)
		assert.Equal(t, models.DefaultDesignName, created.DesignName)
		assert.Equal(t, "3d", created.ProductType)
		require.NotNil(t, created.TabSettings)
		assert.Equal(t, models.DefaultTabSettings(), *created.TabSettings)
		assert.JSONEq(t, "{}", string(created.LayersDesign))
	})

	t.Run("missing sq makes no network call", func(t *testing.T) {
		fake := newFakeUpstream(t)
		body := bytes.NewBufferString(`{"productType":"2d"}`)
		req := withSession(httptest.NewRequest(http.MethodPost, "/console/products", body), superadminSession())
		w := httptest.NewRecorder()
		handlers.CreateProduct(fake.client(), discardLogger()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, fake.totalCalls())
	})
}

func TestUpdateProduct(t *testing.T) {
	// Rename fans out: one bulk rename, a listing, one rewrite per design
	// now under the new SQ, then the refetch that builds the response.
	fake := newFakeUpstream(t)
	fake.respondOK(http.MethodPut, "/api/layerdesigns/bulk-update-sq")
	fake.respondJSON(http.MethodGet, "/api/layerdesigns", []models.LayerDesign{
		{ID: "d1", SQ: "SQ-NEW", DesignName: models.DefaultDesignName, ProductType: "2d"},
		{ID: "d2", SQ: "SQ-NEW", DesignName: "Summer Print", ProductType: "2d"},
		{ID: "d9", SQ: "SQ-OTHER", DesignName: "Unrelated", ProductType: "2d"},
	})
	fake.respondOK(http.MethodPut, "/api/layerdesigns/d1")
	fake.respondOK(http.MethodPut, "/api/layerdesigns/d2")

	body := bytes.NewBufferString(`{"newSq":"SQ-NEW","productType":"3d","tabSettings":{"aiEditor":false,"imageEdit":true,"textEdit":true,"colors":true,"clipart":false}}`)
	req := withSession(httptest.NewRequest(http.MethodPut, "/console/products/SQ-OLD", body), superadminSession())
	req = withURLParam(req, "sq", "SQ-OLD")
	w := httptest.NewRecorder()
	handlers.UpdateProduct(fake.client(), discardLogger()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"oldSq":"SQ-OLD","newSq":"SQ-NEW"}`,
		string(fake.lastBody(http.MethodPut, "/api/layerdesigns/bulk-update-sq")))
	assert.Equal(t, 1, fake.count(http.MethodPut, "/api/layerdesigns/d1"))
	assert.Equal(t, 1, fake.count(http.MethodPut, "/api/layerdesigns/d2"))
	assert.Equal(t, 0, fake.count(http.MethodPut, "/api/layerdesigns/d9"))
	// One listing inside the fan-out plus the closing refetch.
	assert.Equal(t, 2, fake.count(http.MethodGet, "/api/layerdesigns"))

	var rewritten models.LayerDesign
	require.NoError(t, json.Unmarshal(fake.lastBody(http.MethodPut, "/api/layerdesigns/d2"), &rewritten))
	assert.Equal(t, "SQ-NEW", rewritten.SQ)
	assert.Equal(t, "Summer Print", rewritten.DesignName)
	assert.Equal(t, "3d", rewritten.ProductType)
	require.NotNil(t, rewritten.TabSettings)
	assert.False(t, rewritten.TabSettings.AiEditor)
	assert.False(t, rewritten.TabSettings.Clipart)
	assert.True(t, rewritten.TabSettings.Colors)
}

func TestDeleteProduct(t *testing.T) {
	fake := newFakeUpstream(t)
	fake.respondOK(http.MethodDelete, "/api/layerdesigns/by-sq/SQ-100")
	fake.respondJSON(http.MethodGet, "/api/layerdesigns", []models.LayerDesign{})

	req := withSession(httptest.NewRequest(http.MethodDelete, "/console/products/SQ-100", nil), superadminSession())
	req = withURLParam(req, "sq", "SQ-100")
	w := httptest.NewRecorder()
	handlers.DeleteProduct(fake.client(), discardLogger()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.count(http.MethodDelete, "/api/layerdesigns/by-sq/SQ-100"))
	assert.Equal(t, 1, fake.count(http.MethodGet, "/api/layerdesigns"))
}
