package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"customizer-console/internal/collection"
	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

// DashboardView branches by role: a superadmin sees the managed users
// and aggregate counts, everyone else sees their own store configuration
// (nil until first saved).
type DashboardView struct {
	Role          string                     `json:"role"`
	Users         []models.User              `json:"users,omitempty"`
	Counts        *DashboardCounts           `json:"counts,omitempty"`
	Configuration *models.StoreConfiguration `json:"configuration,omitempty"`
}

type DashboardCounts struct {
	Users    int `json:"users"`
	Products int `json:"products"`
}

func Dashboard(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		view := DashboardView{Role: sess.Identity.Role}

		if sess.Identity.Role == models.RoleSuperadmin {
			users, err := api.ListUsers(r.Context(), sess.Token)
			if err != nil {
				lg.Errorw("dashboard user list failed", "error", err)
				upstreamError(w, r, err, "Failed to fetch users")
				return
			}
			view.Users = models.VisibleUsers(users)
			counts := &DashboardCounts{Users: len(view.Users)}
			if sqs, err := api.ListSQs(r.Context(), sess.Token); err != nil {
				lg.Warnw("dashboard product count unavailable", "error", err)
			} else {
				counts.Products = len(sqs)
			}
			view.Counts = counts
			ok(w, r, view)
			return
		}

		configs, err := api.ListConfigurations(r.Context(), sess.Token)
		if err != nil {
			lg.Errorw("dashboard configuration fetch failed", "error", err)
			upstreamError(w, r, err, "Failed to fetch configuration.")
			return
		}
		if len(configs) > 0 {
			view.Configuration = &configs[0]
		}
		ok(w, r, view)
	}
}

func GetConfiguration(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := session.Token(r.Context())
		configs, err := api.ListConfigurations(r.Context(), token)
		if err != nil {
			upstreamError(w, r, err, "Failed to fetch configuration.")
			return
		}
		if len(configs) == 0 {
			ok(w, r, nil)
			return
		}
		ok(w, r, configs[0])
	}
}

type saveConfigurationReq struct {
	ID               string `json:"id"`
	StoreID          string `json:"storeId" validate:"required"`
	StoreURL         string `json:"storeUrl" validate:"required"`
	StoreAccessToken string `json:"storeAccessToken" validate:"required"`
	StoreEndpoint    string `json:"storeEndpoint" validate:"required"`
	Subscription     string `json:"subscription"`
}

// SaveConfiguration creates the caller's configuration on first save and
// updates it in place afterwards, then refetches so the response is the
// stored record rather than the submitted one.
func SaveConfiguration(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveConfigurationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if req.Subscription != "active" {
			req.Subscription = "inactive"
		}
		cfg := models.StoreConfiguration{
			ID:               req.ID,
			StoreID:          req.StoreID,
			StoreURL:         req.StoreURL,
			StoreAccessToken: req.StoreAccessToken,
			StoreEndpoint:    req.StoreEndpoint,
			Subscription:     req.Subscription,
		}

		token := session.Token(r.Context())
		sync := collection.New(func(ctx context.Context) ([]models.StoreConfiguration, error) {
			return api.ListConfigurations(ctx, token)
		})
		configs, err := sync.Mutate(r.Context(), func(ctx context.Context) error {
			if cfg.ID == "" {
				return api.CreateConfiguration(ctx, token, cfg)
			}
			return api.UpdateConfiguration(ctx, token, cfg.ID, cfg)
		})
		if err != nil {
			lg.Errorw("configuration save failed", "error", err)
			upstreamError(w, r, err, "Something went wrong.")
			return
		}
		if len(configs) == 0 {
			ok(w, r, nil)
			return
		}
		ok(w, r, configs[0])
	}
}
