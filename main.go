package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stokreport/adapters/excel"
	"stokreport/app"
	"stokreport/internal"
	"stokreport/internal/config"
	"stokreport/internal/schema"
	"stokreport/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	internal.DefaultLogger = logger
	gin.SetMode(appConfig.Server.GinMode)

	s, err := schema.Load(appConfig.Report.SchemaFile)
	if err != nil {
		log.Fatalf("Failed to load column schema: %v", err)
	}
	logger.Info("column schema %s loaded", s.Version)

	service := app.NewReportService(
		excel.NewDataReader(excel.DefaultExcelConfig()).WithLogger(logger),
		excel.NewWorkbookWriter(),
		s,
		logger,
	)

	server, err := ui.NewServer(*appConfig, service, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting stock report server on port %s", appConfig.Server.Port)
	if err := server.Start(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
