package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"customizer-console/internal/httpserver/handlers"
	"customizer-console/internal/metrics"
	"customizer-console/internal/models"
	"customizer-console/internal/session"
	"customizer-console/internal/upstream"
)

func NewRouter(api *upstream.Client, sessions *session.Store, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(metrics.Middleware)

	r.Post("/auth/request-otp", handlers.RequestOTP(api, lg))
	r.Post("/auth/verify-otp", handlers.VerifyOTP(api, sessions, lg))
	r.Post("/auth/forgot-password", handlers.ForgotPassword(api, lg))
	r.Post("/auth/verify-reset-token", handlers.VerifyResetToken(api, lg))
	r.Post("/auth/reset-password", handlers.ResetPassword(api, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(session.RequireSession(sessions))
		protected.Post("/auth/logout", handlers.Logout(sessions, lg))
		protected.Get("/console/dashboard", handlers.Dashboard(api, lg))
		protected.Get("/console/configuration", handlers.GetConfiguration(api, lg))
		protected.Put("/console/configuration", handlers.SaveConfiguration(api, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(session.RequireRole(models.RoleSuperadmin))
			admin.Get("/console/users", handlers.ListUsers(api, lg))
			admin.Post("/console/users", handlers.CreateUser(api, lg))
			admin.Put("/console/users/{id}", handlers.UpdateUser(api, lg))
			admin.Patch("/console/users/{id}/active", handlers.ToggleUserActive(api, lg))
			admin.Delete("/console/users/{id}", handlers.DeleteUser(api, lg))

			admin.Get("/console/products", handlers.ListProducts(api, lg))
			admin.Post("/console/products", handlers.CreateProduct(api, lg))
			admin.Put("/console/products/{sq}", handlers.UpdateProduct(api, lg))
			admin.Delete("/console/products/{sq}", handlers.DeleteProduct(api, lg))

			admin.Get("/console/products/{sq}/designs", handlers.ListDesigns(api, lg))
			admin.Post("/console/products/{sq}/designs", handlers.CreateDesign(api, lg))
			admin.Put("/console/designs/{id}", handlers.UpdateDesign(api, lg))
			admin.Delete("/console/designs/{id}", handlers.DeleteDesign(api, lg))

			admin.Get("/console/designs/{id}", handlers.GetDesign(api, lg))
			admin.Post("/console/designs/{id}/customize", handlers.SaveCustomizeData(api, lg))
			admin.Delete("/console/designs/{id}/customize/{index}", handlers.DeleteCustomizeData(api, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", metrics.Handler())
	return r
}
