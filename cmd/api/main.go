package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/api/routes"
	"github.com/ArowuTest/spin-wheel-backend/internal/config"
	"github.com/ArowuTest/spin-wheel-backend/internal/handlers"
	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/ArowuTest/spin-wheel-backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.LogLevel))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.UsesDefaultSecrets() {
			slog.Warn("ADMIN_CODE or ADMIN_SESSION_SECRET left at their defaults in production")
		}
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("Failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			slog.Error("Error closing store", "error", err)
		}
	}()

	authService, err := services.NewAuthService(services.AuthConfig{
		AdminCode:     cfg.Admin.Code,
		SessionSecret: cfg.Admin.SessionSecret,
		SessionTTL:    cfg.SessionTTL(),
	})
	if err != nil {
		slog.Error("Failed to initialize authenticator", "error", err)
		os.Exit(1)
	}
	configService := services.NewConfigService(st.Configs, models.Configuration{
		BusinessName:   cfg.Business.Name,
		InstagramQRURL: cfg.Business.InstagramQRURL,
		ExemptDNIs:     cfg.Spin.ExemptDNIs,
	})
	prizeService := services.NewPrizeService(st.Prizes)
	spinService := services.NewSpinService(configService, st.Prizes, st.Spins, cfg.Cooldown())

	if err := bootstrap(ctx, configService, prizeService); err != nil {
		slog.Error("Failed to bootstrap data", "error", err)
		os.Exit(1)
	}

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthService:   authService,
		AuthHandler:   handlers.NewAuthHandler(authService, cfg.IsProduction()),
		ConfigHandler: handlers.NewConfigHandler(configService),
		PrizeHandler:  handlers.NewPrizeHandler(prizeService),
		SpinHandler:   handlers.NewSpinHandler(spinService),
		HealthHandler: handlers.NewHealthHandler(st),
		StaticHandler: handlers.NewStaticHandler(cfg.Server.StaticDir),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}

// bootstrap makes sure the configuration singleton exists and the catalog is not empty
func bootstrap(ctx context.Context, configService services.ConfigService, prizeService services.PrizeService) error {
	if _, err := configService.GetConfig(ctx); err != nil {
		return err
	}
	_, err := prizeService.SeedDefaults(ctx)
	return err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
