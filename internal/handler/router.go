/*
Package handler provides the HTTP handlers and routing setup for the PawHaven server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"pawhaven/internal/pkg/auth/jwt"
	"pawhaven/internal/pkg/limiter"
	"pawhaven/internal/pkg/logx"
	"pawhaven/internal/pkg/req"
	"pawhaven/internal/pkg/resp"
)

const (
	RegisterRate  = 0.05
	RegisterBurst = 2
	ChatRate      = 0.2
	ChatBurst     = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)
	chatLimiter := limiter.NewIPRateLimiter(rate.Limit(ChatRate), ChatBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-PoW-Token"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "PawHaven Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				req.LimitBody(w, r)
				next.ServeHTTP(w, r)
			})
		})
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Get("/challenge", HandlePowChallenge(deps))
			auth.Post("/challenge/verify", HandlePowVerify(deps))

			rateLimitedRegister := registerLimiter.Middleware(HandleRegister(deps))
			auth.Post("/register", http.HandlerFunc(rateLimitedRegister.ServeHTTP))
			auth.Post("/login", HandleLogin(deps))
		})

		api.Get("/user/profile", HandleGetProfile(deps))

		api.Route("/pets", func(pets chi.Router) {
			pets.Get("/", HandleListPets(deps))
			pets.Get("/{id}", HandleGetPet(deps))
			pets.Get("/{id}/medical", HandleListMedicalRecords(deps))
			pets.Get("/{id}/photo", HandlePhotoDownload(deps))

			pets.Post("/", HandleCreatePet(deps))
			pets.Put("/{id}", HandleUpdatePet(deps))
			pets.Delete("/{id}", HandleDeletePet(deps))
			pets.Post("/{id}/medical", HandleCreateMedicalRecord(deps))
			pets.Post("/photo/presign", HandlePhotoPresignUpload(deps))
		})

		api.Route("/resources", func(res chi.Router) {
			res.Get("/", HandleListResources(deps))
			res.Get("/{id}", HandleGetResource(deps))
			res.Post("/", HandleCreateResource(deps))
			res.Put("/{id}", HandleUpdateResource(deps))
			res.Delete("/{id}", HandleDeleteResource(deps))
		})

		api.Route("/appointments", func(app chi.Router) {
			app.Get("/", HandleListAppointments(deps))
			app.Get("/all", HandleListAllAppointments(deps))
			app.Post("/", HandleBookAppointment(deps))
			app.Post("/{id}/cancel", HandleCancelAppointment(deps))
		})

		api.Route("/applications", func(app chi.Router) {
			app.Get("/", HandleListApplications(deps))
			app.Post("/", HandleSubmitApplication(deps))
			app.Get("/pending", HandleListPendingApplications(deps))
			app.Post("/{id}/decide", HandleDecideApplication(deps))
		})

		api.Route("/contacts", func(ct chi.Router) {
			ct.Get("/", HandleListContacts(deps))
			ct.Post("/", HandleCreateContact(deps))
			ct.Put("/{id}", HandleUpdateContact(deps))
			ct.Delete("/{id}", HandleDeleteContact(deps))
		})

		api.Delete("/medical/{id}", HandleDeleteMedicalRecord(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, chatLimiter, deps))

	return r
}
