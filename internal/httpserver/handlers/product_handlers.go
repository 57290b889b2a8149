package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"customizer-console/internal/collection"
	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

func productsSync(api *upstream.Client, token string) *collection.Sync[models.Product] {
	return collection.New(func(ctx context.Context) ([]models.Product, error) {
		designs, err := api.ListLayerDesigns(ctx, token)
		if err != nil {
			return nil, err
		}
		return models.GroupProducts(designs), nil
	})
}

func ListProducts(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := productsSync(api, session.Token(r.Context())).Refresh(r.Context())
		if err != nil {
			lg.Errorw("product list failed", "error", err)
			upstreamError(w, r, err, "Failed to fetch Products")
			return
		}
		ok(w, r, products)
	}
}

type createProductReq struct {
	SQ          string              `json:"sq" validate:"required"`
	ProductType string              `json:"productType" validate:"omitempty,oneof=2d 3d"`
	TabSettings *models.TabSettings `json:"tabSettings"`
}

// CreateProduct seeds a new SQ with its hidden placeholder design, which
// is what makes the product exist upstream before any real design does.
func CreateProduct(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if req.ProductType == "" {
			req.ProductType = "2d"
		}
		tabs := models.DefaultTabSettings()
		if req.TabSettings != nil {
			tabs = *req.TabSettings
		}

		token := session.Token(r.Context())
		products, err := productsSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.CreateLayerDesign(ctx, token, models.LayerDesign{
				SQ:           req.SQ,
				DesignName:   models.DefaultDesignName,
				ProductType:  req.ProductType,
				TabSettings:  &tabs,
				LayersDesign: json.RawMessage("{}"),
			})
		})
		if err != nil {
			lg.Errorw("product create failed", "sq", req.SQ, "error", err)
			upstreamError(w, r, err, "Failed to add Product")
			return
		}
		ok(w, r, products)
	}
}

type updateProductReq struct {
	NewSQ       string              `json:"newSq" validate:"required"`
	ProductType string              `json:"productType" validate:"omitempty,oneof=2d 3d"`
	TabSettings *models.TabSettings `json:"tabSettings"`
}

// UpdateProduct renames an SQ and rewrites the denormalized metadata on
// every design that now carries it: bulk rename first, then refetch the
// collection, then one update per design under the new SQ. There is no
// single authoritative product record upstream, so consistency is kept by
// this fan-out write.
func UpdateProduct(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oldSQ := chi.URLParam(r, "sq")
		var req updateProductReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if req.ProductType == "" {
			req.ProductType = "2d"
		}
		tabs := models.DefaultTabSettings()
		if req.TabSettings != nil {
			tabs = *req.TabSettings
		}

		token := session.Token(r.Context())
		products, err := productsSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			if err := api.BulkUpdateSQ(ctx, token, oldSQ, req.NewSQ); err != nil {
				return err
			}
			designs, err := api.ListLayerDesigns(ctx, token)
			if err != nil {
				return err
			}
			for _, d := range designs {
				if d.SQ != req.NewSQ {
					continue
				}
				d.ProductType = req.ProductType
				d.TabSettings = &tabs
				if err := api.UpdateLayerDesign(ctx, token, d.ID, d); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			lg.Errorw("product update failed", "oldSq", oldSQ, "newSq", req.NewSQ, "error", err)
			upstreamError(w, r, err, "Failed to update Product")
			return
		}
		ok(w, r, products)
	}
}

func DeleteProduct(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sq := chi.URLParam(r, "sq")
		token := session.Token(r.Context())
		products, err := productsSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.DeleteLayerDesignsBySQ(ctx, token, sq)
		})
		if err != nil {
			lg.Errorw("product delete failed", "sq", sq, "error", err)
			upstreamError(w, r, err, "Failed to delete Product")
			return
		}
		ok(w, r, products)
	}
}
