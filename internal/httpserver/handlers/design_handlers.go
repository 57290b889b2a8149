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

func designsSync(api *upstream.Client, token, sq string) *collection.Sync[models.LayerDesign] {
	return collection.New(func(ctx context.Context) ([]models.LayerDesign, error) {
		designs, err := api.LayerDesignsBySQ(ctx, token, sq)
		if err != nil {
			return nil, err
		}
		return models.VisibleDesigns(designs), nil
	})
}

// ListDesigns returns the real designs under an SQ. A product holding
// only its placeholder lists as empty.
func ListDesigns(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sq := chi.URLParam(r, "sq")
		designs, err := designsSync(api, session.Token(r.Context()), sq).Refresh(r.Context())
		if err != nil {
			lg.Errorw("design list failed", "sq", sq, "error", err)
			upstreamError(w, r, err, "Failed to fetch LayerDesigns")
			return
		}
		ok(w, r, designs)
	}
}

type saveDesignReq struct {
	DesignName   string          `json:"designName" validate:"required"`
	LayersDesign json.RawMessage `json:"layersDesign"`
}

func CreateDesign(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sq := chi.URLParam(r, "sq")
		var req saveDesignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if len(req.LayersDesign) == 0 {
			req.LayersDesign = json.RawMessage("{}")
		}
		token := session.Token(r.Context())
		designs, err := designsSync(api, token, sq).Mutate(r.Context(), func(ctx context.Context) error {
			return api.CreateLayerDesign(ctx, token, models.LayerDesign{
				SQ:           sq,
				DesignName:   req.DesignName,
				LayersDesign: req.LayersDesign,
			})
		})
		if err != nil {
			lg.Errorw("design create failed", "sq", sq, "error", err)
			upstreamError(w, r, err, "Failed to save Product Design")
			return
		}
		ok(w, r, designs)
	}
}

// UpdateDesign rewrites name and payload. The design's SQ is read from
// the stored record, not the request, so a design cannot hop products
// through this operation.
func UpdateDesign(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req saveDesignReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		token := session.Token(r.Context())
		current, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		if len(req.LayersDesign) == 0 {
			req.LayersDesign = json.RawMessage("{}")
		}
		designs, err := designsSync(api, token, current.SQ).Mutate(r.Context(), func(ctx context.Context) error {
			return api.UpdateLayerDesign(ctx, token, id, models.LayerDesign{
				SQ:           current.SQ,
				DesignName:   req.DesignName,
				LayersDesign: req.LayersDesign,
			})
		})
		if err != nil {
			lg.Errorw("design update failed", "id", id, "error", err)
			upstreamError(w, r, err, "Failed to save Product Design")
			return
		}
		ok(w, r, designs)
	}
}

func DeleteDesign(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		token := session.Token(r.Context())
		current, err := api.GetLayerDesign(r.Context(), token, id)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch design")
			return
		}
		designs, err := designsSync(api, token, current.SQ).Mutate(r.Context(), func(ctx context.Context) error {
			return api.DeleteLayerDesign(ctx, token, id)
		})
		if err != nil {
			lg.Errorw("design delete failed", "id", id, "error", err)
			upstreamError(w, r, err, "Failed to delete Product Design")
			return
		}
		ok(w, r, designs)
	}
}
