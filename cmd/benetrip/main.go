package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "benetrip/cmd/benetrip/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"benetrip/cfg"
	"benetrip/internal/api"
	"benetrip/internal/places"
	"benetrip/internal/redirect"
	"benetrip/internal/search"
	"benetrip/pkg/cache"
	"benetrip/pkg/flightapi"
	"benetrip/pkg/logger"
)

// @title           Benetrip Flight API
// @version         1.0
// @description     API service for flight search, booking redirects and place autocomplete.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// cache
	// ============
	var store cache.Cache
	if config.RedisEnabled {
		redisAddr := config.RedisConfig.Host + ":" + config.RedisConfig.Port
		store = cache.NewRedisCache(redisAddr, config.RedisConfig.Password)
	} else {
		store = cache.NewMemoryCache()
	}

	// ============
	// external service
	// ============
	httpClient := &http.Client{
		Timeout: 15 * time.Second,
	}
	apiClient := flightapi.NewClient(httpClient, flightapi.Config{
		BaseURL:           config.FlightsAPIConfig.BaseURL,
		Marker:            config.FlightsAPIConfig.Marker,
		RequestsPerSecond: 10,
		Burst:             20,
	}, zlogger)

	// ============
	// internal services
	// ============
	pollOpts := search.PollOptions{
		Interval:    config.PollConfig.Interval,
		MaxAttempts: config.PollConfig.MaxAttempts,
	}
	searchSvc := search.NewService(apiClient, store, pollOpts, config.ResultsTTLMinutes, zlogger)

	redirectCache := redirect.NewCache(store)
	// Fresh session: never serve partner links cached by a previous run.
	if err := redirectCache.ClearAll(context.Background()); err != nil {
		zlogger.Warn("failed to clear redirect cache at startup", logger.Field{Key: "err", Value: err})
	}
	resolver := redirect.NewResolver(apiClient, redirectCache, zlogger)

	placesSvc := places.NewService(apiClient, zlogger)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	handler := api.NewHandler(searchSvc, resolver, placesSvc, zlogger)
	handler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
