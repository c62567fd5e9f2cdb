package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/staffhub-hr/timeoff-backend-go/internal/config"
	"github.com/staffhub-hr/timeoff-backend-go/internal/handler/http/middleware"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	teamHandler TeamHandler,
	timeoffHandler TimeoffHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffhub-timeoff"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/me", userHandler.Me)
				r.Get("/{userID}", userHandler.Get)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.List)
				r.Post("/", teamHandler.Create)
				r.Get("/my", teamHandler.ListMine)
				r.Route("/{teamID}", func(r chi.Router) {
					r.Get("/", teamHandler.Get)
					r.Put("/", teamHandler.Update)
					r.Delete("/", teamHandler.Delete)
					r.Post("/members", teamHandler.AddMember)
					r.Delete("/members/{userID}", teamHandler.RemoveMember)
				})
			})

			r.Route("/timeoff-requests", func(r chi.Router) {
				r.Post("/", timeoffHandler.Create)
				r.Get("/my", timeoffHandler.ListMine)
				r.Get("/pending-approval", timeoffHandler.ListPending)
				r.Get("/approved-by-me", timeoffHandler.ListGiven)
				r.Route("/{requestID}", func(r chi.Router) {
					r.Get("/", timeoffHandler.Get)
					r.Put("/", timeoffHandler.Update)
					r.Delete("/", timeoffHandler.Delete)
					r.Post("/answer", timeoffHandler.Answer)
				})
			})
		})
	})
	return r
}
