package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/plogging-ethiopia/volunteer-ledger/docs" // Import generated docs
	appMiddleware "github.com/plogging-ethiopia/volunteer-ledger/internal/middleware"
	"github.com/plogging-ethiopia/volunteer-ledger/internal/response"
)

type Router struct {
	authHandler        *AuthHandler
	volunteerHandler   *VolunteerHandler
	eventHandler       *EventHandler
	certificateHandler *CertificateHandler
	badgeHandler       *BadgeHandler
	jwtSecret          string
}

func NewRouter(
	authHandler *AuthHandler,
	volunteerHandler *VolunteerHandler,
	eventHandler *EventHandler,
	certificateHandler *CertificateHandler,
	badgeHandler *BadgeHandler,
	jwtSecret string,
) *Router {
	return &Router{
		authHandler:        authHandler,
		volunteerHandler:   volunteerHandler,
		eventHandler:       eventHandler,
		certificateHandler: certificateHandler,
		badgeHandler:       badgeHandler,
		jwtSecret:          jwtSecret,
	}
}

func (ro *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, "Server is running", map[string]string{"status": "ok"})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {

		// ── Auth (public) ────────────────────────────────
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", ro.authHandler.Login)
			r.Post("/refresh", ro.authHandler.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(appMiddleware.Authenticate(ro.jwtSecret))
				r.Get("/me", ro.authHandler.Me)
			})
		})

		// ── Public: QR verification ──────────────────────
		r.Get("/verify/{token}", ro.certificateHandler.Verify)
		r.Get("/badges/{badgeId}/verify", ro.badgeHandler.Verify)
		r.Get("/badges/{badgeId}/image", ro.badgeHandler.Download)

		// ── Protected routes ──────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.Authenticate(ro.jwtSecret))

			// User management (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(appMiddleware.RequireRole("admin"))
				r.Post("/", ro.authHandler.Register)
			})

			// Volunteers
			r.Route("/volunteers", func(r chi.Router) {
				r.Get("/", ro.volunteerHandler.GetAll)
				r.Post("/", ro.volunteerHandler.Create)
				r.Get("/{id}", ro.volunteerHandler.GetByID)
				r.Put("/{id}", ro.volunteerHandler.Update)
				r.Delete("/{id}", ro.volunteerHandler.Delete)
				r.Post("/{id}/photo", ro.volunteerHandler.UploadPhoto)
				r.Get("/{id}/badge", ro.badgeHandler.Latest)
			})

			// Events & attendance
			r.Route("/events", func(r chi.Router) {
				r.Get("/", ro.eventHandler.GetAll)
				r.Post("/", ro.eventHandler.Create)
				r.Get("/{id}", ro.eventHandler.GetByID)
				r.Put("/{id}", ro.eventHandler.Update)
				r.Delete("/{id}", ro.eventHandler.Delete)
				r.Post("/{id}/enroll", ro.eventHandler.Enroll)
				r.Post("/{id}/check-in", ro.eventHandler.CheckIn)
				r.Post("/{id}/check-out/{volunteerId}", ro.eventHandler.CheckOut)
				r.Get("/{id}/attendance", ro.eventHandler.Attendance)
			})

			// Certificates
			r.Route("/certificates", func(r chi.Router) {
				r.Get("/templates", ro.certificateHandler.Templates)
				r.Get("/", ro.certificateHandler.GetAll)
				r.Post("/", ro.certificateHandler.Create)
				r.Post("/batch", ro.certificateHandler.CreateBatch)
				r.Get("/{id}", ro.certificateHandler.GetByID)
				r.Get("/{id}/download", ro.certificateHandler.Download)
				r.Post("/{id}/revoke", ro.certificateHandler.Revoke)
			})

			// Badges
			r.Route("/badges", func(r chi.Router) {
				r.Post("/", ro.badgeHandler.Create)
				r.Get("/{badgeId}/preview", ro.badgeHandler.Preview)
			})
		})
	})

	return r
}
