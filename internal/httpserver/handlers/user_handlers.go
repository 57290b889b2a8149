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

func usersSync(api *upstream.Client, token string) *collection.Sync[models.User] {
	return collection.New(func(ctx context.Context) ([]models.User, error) {
		users, err := api.ListUsers(ctx, token)
		if err != nil {
			return nil, err
		}
		return models.VisibleUsers(users), nil
	})
}

func ListUsers(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := usersSync(api, session.Token(r.Context())).Refresh(r.Context())
		if err != nil {
			lg.Errorw("user list failed", "error", err)
			upstreamError(w, r, err, "Failed to fetch users")
			return
		}
		ok(w, r, users)
	}
}

type createUserReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// CreateUser registers a managed account. Role is pinned to "user"; the
// console never mints superadmins.
func CreateUser(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		token := session.Token(r.Context())
		users, err := usersSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.Register(ctx, token, upstream.Registration{
				Name:     req.Name,
				Email:    req.Email,
				Password: req.Password,
				Phone:    req.Phone,
				Role:     models.RoleUser,
			})
		})
		if err != nil {
			lg.Errorw("user register failed", "email", req.Email, "error", err)
			upstreamError(w, r, err, "Registration failed.")
			return
		}
		ok(w, r, users)
	}
}

type updateUserReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password"`
}

// UpdateUser edits a managed account. A blank password is left out of
// the upstream payload, meaning keep the current one.
func UpdateUser(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req updateUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		token := session.Token(r.Context())
		users, err := usersSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.UpdateUser(ctx, token, id, upstream.UserUpdate{
				Name:     req.Name,
				Email:    req.Email,
				Phone:    req.Phone,
				Password: req.Password,
			})
		})
		if err != nil {
			lg.Errorw("user update failed", "id", id, "error", err)
			upstreamError(w, r, err, "Update failed.")
			return
		}
		ok(w, r, users)
	}
}

type toggleActiveReq struct {
	Active *bool `json:"active" validate:"required"`
}

// ToggleUserActive is fire-and-refetch: no confirmation step, and the
// server side is what actually blocks an inactive user from logging in.
func ToggleUserActive(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req toggleActiveReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		token := session.Token(r.Context())
		users, err := usersSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.SetUserActive(ctx, token, id, *req.Active)
		})
		if err != nil {
			lg.Errorw("user active toggle failed", "id", id, "error", err)
			upstreamError(w, r, err, "Failed to update user status")
			return
		}
		ok(w, r, users)
	}
}

// DeleteUser removes the account. The blocking confirmation dialog is the
// shell's job; by the time this is called the decision is made.
func DeleteUser(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		token := session.Token(r.Context())
		users, err := usersSync(api, token).Mutate(r.Context(), func(ctx context.Context) error {
			return api.DeleteUser(ctx, token, id)
		})
		if err != nil {
			lg.Errorw("user delete failed", "id", id, "error", err)
			upstreamError(w, r, err, "Failed to delete user")
			return
		}
		ok(w, r, users)
	}
}
