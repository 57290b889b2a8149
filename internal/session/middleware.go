package session

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"customizer-console/internal/httpserver/response"
)

// LoginRoute is where unauthenticated visitors are sent.
const LoginRoute = "/login"

// DenialMessage is the uniform authorization-denied body. Wrong role gets
// this text and nothing else, no redirect, no retry affordance.
const DenialMessage = "You are not authorized to view this page."

// RequireSession is the route guard. It checks session presence only;
// role checks belong to RequireRole so the dashboard can branch content
// by role instead of denying access.
func RequireSession(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				renderLoginRedirect(w, r)
				return
			}
			sess, err := store.Current(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, ErrNoSession) {
					renderLoginRedirect(w, r)
					return
				}
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("session lookup failed"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireRole is the per-page role gate. It runs before any handler, so a
// denied request never triggers an upstream fetch.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()).Identity.Role != role {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(DenialMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func renderLoginRedirect(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Redirect(response.StatusError, LoginRoute))
}
