// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/skyden/airdemand/airports"
	"github.com/skyden/airdemand/config"
	"github.com/skyden/airdemand/handlers"
	"github.com/skyden/airdemand/opensky"
	"github.com/skyden/airdemand/services"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("port", cfg.Server.Port),
		zap.String("opensky_base_url", cfg.OpenSky.BaseURL),
		zap.Duration("cache_ttl", cfg.OpenSky.CacheTTL))

	registry := airports.NewRegistry()
	client := opensky.NewClient(logger,
		opensky.WithBaseURL(cfg.OpenSky.BaseURL),
		opensky.WithHTTPClient(&http.Client{Timeout: cfg.OpenSky.Timeout}),
		opensky.WithCacheTTL(cfg.OpenSky.CacheTTL))
	pricing := services.NewPricingModel(nil)
	analysis := services.NewAnalysisService(client, registry, pricing, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status": "ok", "message": "airdemand backend is healthy"}`)
	})
	handlers.NewAnalysisHandler(analysis, registry, cfg, logger).RegisterRoutes(mux)

	addr := ":" + cfg.Server.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
