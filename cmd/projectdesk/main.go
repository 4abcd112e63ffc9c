package main

import (
	"fmt"
	"os"

	"github.com/madik/projectdesk/internal/auth"
	"github.com/madik/projectdesk/internal/config"
	"github.com/madik/projectdesk/internal/db"
	"github.com/madik/projectdesk/internal/excel"
	httphandler "github.com/madik/projectdesk/internal/http"
	"github.com/madik/projectdesk/internal/http/middleware"
	"github.com/madik/projectdesk/internal/logger"
	"github.com/madik/projectdesk/internal/pdf"
	"github.com/madik/projectdesk/internal/repository"
	"github.com/madik/projectdesk/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	projectRepo := repository.NewProjectRepository(database)
	userRepo := repository.NewUserRepository(database)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL)
	authService := service.NewAuthService(userRepo, issuer)
	projectService := service.NewProjectService(projectRepo, excelGenerator, pdfGenerator)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(authService, projectService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting projectdesk service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
