package app

import (
	"context"
	"net/http"

	"signup-service/internal/auth/handler"
	"signup-service/internal/auth/registration"
	"signup-service/internal/config"
	"signup-service/internal/logger"
	"signup-service/internal/metrics"
	"signup-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	service, err := registration.NewService(
		registration.Settings{
			ClientID:     cfg.CognitoClientID,
			ClientSecret: cfg.CognitoClientSecret,
		},
		infra.Provider,
		registration.WithMetrics(metrics.New(infra.Registry)),
		registration.WithLogger(logger.L()),
	)
	if err != nil {
		return nil, err
	}

	return newRouter(handler.NewHandler(service), infra.Registry), nil
}

func newRouter(authHandler *handler.Handler, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	for _, route := range router.Routes() {
		logger.Info("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}

	return router
}
