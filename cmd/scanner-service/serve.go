package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	delivery "golang-stock-scanner/internal/scanner/delivery/http"
	_ "golang-stock-scanner/internal/scanner/docs"
	"golang-stock-scanner/internal/scanner/service"
	"golang-stock-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scanner HTTP API and the nightly schedule",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	a, err := newApp(cfg, true)
	if err != nil {
		log.Fatalf("Failed to initialize scanner service: %v", err)
	}
	defer a.Close()
	appLogger := a.log

	appLogger.Info("Starting Scanner Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("provider", cfg.DataSource.Provider),
		logger.StringField("universe", cfg.Universe.Source),
	)

	if cfg.Schedule.Enabled {
		schedulerSvc, err := service.NewSchedulerService(cfg, a.scanService, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize scheduler", logger.ErrorField(err))
		}
		if err := schedulerSvc.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
		}
		defer schedulerSvc.Stop()
	}

	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")
	delivery.NewCatalogHandler(a.scanService, appLogger).RegisterRoutes(apiV1)
	scansGroup := apiV1.Group("/scans")
	delivery.NewScanHandler(a.scanService, appLogger).RegisterRoutes(scansGroup)
	delivery.NewProgressHandler(a.scanService, appLogger).RegisterRoutes(scansGroup)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}
