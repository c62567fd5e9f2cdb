package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffhub-hr/timeoff-backend-go/internal/config"
	appHTTP "github.com/staffhub-hr/timeoff-backend-go/internal/handler/http"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/email"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/jwt"
	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/oauth"
	"github.com/staffhub-hr/timeoff-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/staffhub-hr/timeoff-backend-go/internal/service/auth"
	"github.com/staffhub-hr/timeoff-backend-go/internal/service/notify"
	serviceTeam "github.com/staffhub-hr/timeoff-backend-go/internal/service/team"
	serviceTimeoff "github.com/staffhub-hr/timeoff-backend-go/internal/service/timeoff"
	serviceUser "github.com/staffhub-hr/timeoff-backend-go/internal/service/user"
	"github.com/staffhub-hr/timeoff-backend-go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, migrations.FS, "."); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	requestRepo := postgresql.NewTimeoffRequestRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleLoginEnabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	dispatcher := notify.NewDispatcher(emailService, notify.Config{})
	defer dispatcher.Stop()

	authService := serviceAuth.NewAuthService(txManager, userRepo, JWTService, tokenRepo)
	userService := serviceUser.NewService(userRepo)
	teamService := serviceTeam.NewService(teamRepo, userRepo)
	timeoffService := serviceTimeoff.NewService(txManager, requestRepo, userRepo, teamRepo, emailService, dispatcher)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userService)
	teamHandler := appHTTP.NewTeamHandler(teamService)
	timeoffHandler := appHTTP.NewTimeoffHandler(timeoffService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		userHandler,
		teamHandler,
		timeoffHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
