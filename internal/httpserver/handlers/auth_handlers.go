package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"customizer-console/internal/httpserver/response"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

type requestOTPReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestOTP starts (or restarts, for resend) the login flow. On success
// the shell moves to the OTP-entry state tagged with the submitted email.
func RequestOTP(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestOTPReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if err := api.RequestOTP(r.Context(), req.Email, req.Password); err != nil {
			lg.Errorw("request otp failed", "email", req.Email, "error", err)
			upstreamError(w, r, err, "Failed to send OTP")
			return
		}
		ok(w, r, map[string]string{"email": req.Email})
	}
}

type verifyOTPReq struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// VerifyOTP completes login: the upstream trades the code for a token and
// identity, which are persisted together as the session. An incorrect
// code leaves the session absent.
func VerifyOTP(api *upstream.Client, sessions *session.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyOTPReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		result, err := api.VerifyOTP(r.Context(), req.Email, req.OTP)
		if err != nil {
			lg.Infow("otp verification failed", "email", req.Email, "error", err)
			upstreamError(w, r, err, "Invalid OTP")
			return
		}
		cookie, err := sessions.Create(r.Context(), result.Token, result.User)
		if err != nil {
			lg.Errorw("session create failed", "email", req.Email, "error", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create session"))
			return
		}
		sessions.SetCookie(w, cookie)
		ok(w, r, result.User)
	}
}

// Logout clears all persisted session state and points the shell back at
// the login view.
func Logout(sessions *session.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			if err := sessions.Destroy(r.Context(), cookie.Value); err != nil {
				lg.Warnw("session destroy failed", "error", err)
			}
		}
		session.ClearCookie(w)
		render.JSON(w, r, response.Redirect(response.StatusOK, session.LoginRoute))
	}
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if err := api.ForgotPassword(r.Context(), req.Email); err != nil {
			lg.Infow("forgot password failed", "email", req.Email, "error", err)
			upstreamError(w, r, err, "Failed to send reset email")
			return
		}
		ok(w, r, nil)
	}
}

type verifyResetTokenReq struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// VerifyResetToken backs the reset page's load check: a missing or stale
// link is reported before the user types anything.
func VerifyResetToken(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyResetTokenReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if err := api.VerifyResetToken(r.Context(), req.Token, req.Email); err != nil {
			upstreamError(w, r, err, "Invalid or expired reset link")
			return
		}
		ok(w, r, nil)
	}
}

type resetPasswordReq struct {
	Token           string `json:"token" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func ResetPassword(api *upstream.Client, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			decodeError(w, r)
			return
		}
		if err := validate.Struct(req); err != nil {
			validationError(w, r, err)
			return
		}
		if err := api.ResetPassword(r.Context(), req.Token, req.Email, req.NewPassword, req.ConfirmPassword); err != nil {
			lg.Infow("reset password failed", "email", req.Email, "error", err)
			upstreamError(w, r, err, "Failed to reset password")
			return
		}
		ok(w, r, nil)
	}
}
