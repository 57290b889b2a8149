package upstream

import (
	"context"
	"net/http"
	"net/url"

	"customizer-console/internal/models"
)

// Auth flows. None of these carry a bearer token.

func (c *Client) RequestOTP(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/request-otp", "", body, nil)
}

type VerifyOTPResult struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (VerifyOTPResult, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out VerifyOTPResult
	err := c.do(ctx, http.MethodPost, "/api/verify-otp", "", body, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) VerifyResetToken(ctx context.Context, token, email string) error {
	body := map[string]string{"token": token, "email": email}
	return c.do(ctx, http.MethodPost, "/api/verify-reset-token", "", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, email, newPassword, confirmPassword string) error {
	body := map[string]string{
		"token":           token,
		"email":           email,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/reset-password", "", body, nil)
}

// Users.

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (c *Client) Register(ctx context.Context, token string, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/api/register", token, reg, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, http.MethodGet, "/api/users", token, nil, &out)
	return out, err
}

// UserUpdate omits the password entirely when it is blank, which the
// server reads as "keep the current one".
type UserUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, upd UserUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), token, upd, nil)
}

func (c *Client) SetUserActive(ctx context.Context, token, id string, active bool) error {
	body := map[string]bool{"active": active}
	return c.do(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id)+"/active", token, body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, nil)
}

// Store configurations.

func (c *Client) ListConfigurations(ctx context.Context, token string) ([]models.StoreConfiguration, error) {
	var out []models.StoreConfiguration
	err := c.do(ctx, http.MethodGet, "/api/configurations", token, nil, &out)
	return out, err
}

func (c *Client) CreateConfiguration(ctx context.Context, token string, cfg models.StoreConfiguration) error {
	return c.do(ctx, http.MethodPost, "/api/configurations", token, cfg, nil)
}

func (c *Client) UpdateConfiguration(ctx context.Context, token, id string, cfg models.StoreConfiguration) error {
	return c.do(ctx, http.MethodPut, "/api/configurations/"+url.PathEscape(id), token, cfg, nil)
}

// Layer designs.

func (c *Client) ListLayerDesigns(ctx context.Context, token string) ([]models.LayerDesign, error) {
	var out []models.LayerDesign
	err := c.do(ctx, http.MethodGet, "/api/layerdesigns", token, nil, &out)
	return out, err
}

func (c *Client) GetLayerDesign(ctx context.Context, token, id string) (models.LayerDesign, error) {
	var out models.LayerDesign
	err := c.do(ctx, http.MethodGet, "/api/layerdesigns/"+url.PathEscape(id), token, nil, &out)
	return out, err
}

func (c *Client) CreateLayerDesign(ctx context.Context, token string, d models.LayerDesign) error {
	return c.do(ctx, http.MethodPost, "/api/layerdesigns", token, d, nil)
}

func (c *Client) UpdateLayerDesign(ctx context.Context, token, id string, d models.LayerDesign) error {
	return c.do(ctx, http.MethodPut, "/api/layerdesigns/"+url.PathEscape(id), token, d, nil)
}

func (c *Client) DeleteLayerDesign(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/layerdesigns/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) ListSQs(ctx context.Context, token string) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/api/layerdesigns/sqs", token, nil, &out)
	return out, err
}

func (c *Client) LayerDesignsBySQ(ctx context.Context, token, sq string) ([]models.LayerDesign, error) {
	var out []models.LayerDesign
	err := c.do(ctx, http.MethodGet, "/api/layerdesigns/by-sq/"+url.PathEscape(sq), token, nil, &out)
	return out, err
}

func (c *Client) DeleteLayerDesignsBySQ(ctx context.Context, token, sq string) error {
	return c.do(ctx, http.MethodDelete, "/api/layerdesigns/by-sq/"+url.PathEscape(sq), token, nil, nil)
}

func (c *Client) BulkUpdateSQ(ctx context.Context, token, oldSQ, newSQ string) error {
	body := map[string]string{"oldSq": oldSQ, "newSq": newSQ}
	return c.do(ctx, http.MethodPut, "/api/layerdesigns/bulk-update-sq", token, body, nil)
}
