package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"taskan/internal/config"
	"taskan/internal/httpapi"
	"taskan/internal/prefs"
	"taskan/internal/services"
	"taskan/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	driver, err := store.NewDriver(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
	if err != nil {
		logger.Fatal("connect to neo4j", zap.Error(err))
	}
	defer driver.Close(context.Background())

	projectRepo := store.NewProjectRepository(driver)
	periodRepo := store.NewPeriodRepository(driver)
	taskRepo := store.NewTaskRepository(driver)
	userRepo := store.NewUserRepository(driver)

	authService := services.NewAuthService(userRepo, cfg.OAuth, logger)
	projectService := services.NewProjectService(projectRepo, periodRepo, taskRepo, userRepo, logger)
	taskService := services.NewTaskService(projectRepo, periodRepo, taskRepo, logger)

	var generator services.ReportGenerator
	if cfg.Gemini.APIKey != "" {
		g, err := services.NewGeminiGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Fatal("init gemini client", zap.Error(err))
		}
		generator = g
	} else {
		logger.Info("no gemini api key configured, reports disabled")
	}
	reportService := services.NewReportService(generator, logger)

	prefStore, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		logger.Fatal("open preferences", zap.Error(err))
	}

	api := httpapi.New(authService, projectService, taskService, reportService, prefStore, logger)

	router := mux.NewRouter()
	api.Routes(router)

	logger.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
