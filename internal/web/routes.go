package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the full route table: public marketing pages, auth forms,
// the guarded dashboard, and the operational endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(RequestTime)
	r.Use(ClientMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/static/app.css", h.Stylesheet)

	r.Get("/", h.Home)
	r.Get("/about", h.About)
	r.Get("/pricing", h.Pricing)
	r.Get("/contact", h.Contact)
	r.Post("/contact", h.ContactSubmit)
	r.Get("/terms", h.Terms)
	r.Get("/privacy", h.Privacy)

	r.Get("/login", h.LoginPage)
	r.Post("/login", h.LoginSubmit)
	r.Get("/signup", h.SignupPage)
	r.Post("/signup", h.SignupSubmit)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.RequireUser)
		r.Get("/dashboard", h.Dashboard)
		r.Post("/dashboard/sessions/{sessionID}/revoke", h.RevokeSession)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderHTML(w, http.StatusNotFound, errorPage("Page Not Found", "The page you are looking for does not exist."))
	})

	return r
}
