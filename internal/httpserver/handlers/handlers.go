// Package handlers implements the console page operations. Every handler
// follows the same contract: required-field validation before any network
// call, a write followed by an unconditional refetch on mutation, and the
// upstream's own error message surfaced on failure.
package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"customizer-console/internal/httpserver/response"
	"customizer-console/internal/upstream"
)

var validate = validator.New()

func decodeError(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error("failed to decode request"))
}

func validationError(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}
	render.JSON(w, r, response.Error("invalid request"))
}

// upstreamError reports a failed upstream call, reusing the upstream
// status when there is one so the shell can tell 401/403/404 apart.
func upstreamError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusBadGateway
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}
	render.Status(r, status)
	render.JSON(w, r, response.Error(upstream.Message(err, fallback)))
}

func ok(w http.ResponseWriter, r *http.Request, data any) {
	render.JSON(w, r, response.OK(data))
}
