package main

import (
	"bitwise74/shop-api/app"
	"bitwise74/shop-api/config"
	"bitwise74/shop-api/internal/service"
	"bitwise74/shop-api/pkg/middleware"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if err := app.MakeLogger(viper.GetString("app.log_level"), config.Production()); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := app.NewDeps(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	if email := *config.MakeAdmin; email != "" {
		if err := app.MakeAdmin(d.Store, email); err != nil {
			zap.L().Fatal("Failed to make admin", zap.Error(err))
		}

		zap.L().Info("User promoted to admin", zap.String("email", email))
		return
	}

	router := app.NewRouter(d, app.RouterConfig{
		CORSOrigins: viper.GetStringSlice("host.cors"),
		RateLimit:   viper.GetInt("security.rate_limit"),
		Turnstile: middleware.TurnstileConfig{
			Enabled: viper.GetBool("security.turnstile.enabled"),
			Secret:  viper.GetString("security.turnstile.secret_token"),
		},
	})

	// Reset tokens live for an hour, no point checking more often
	service.TokenCleanup(ctx, time.Hour, d.Store)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("Server starting", zap.String("addr", srv.Addr), zap.String("environment", viper.GetString("app.environment")))

	go func() {
		var err error

		if viper.GetBool("host.ssl.enabled") {
			err = srv.ListenAndServeTLS(
				viper.GetString("host.ssl.certificate_path"),
				viper.GetString("host.ssl.certificate_key_path"),
			)
		} else {
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	zap.L().Info("Signal received, starting graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server shutdown error", zap.Error(err))
	}
}
