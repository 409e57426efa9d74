package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/evportal-ch/newshub/api"
	"github.com/evportal-ch/newshub/datastore"
	"github.com/evportal-ch/newshub/feeds"
	"github.com/evportal-ch/newshub/news"
	rh "github.com/evportal-ch/newshub/route-handlers"
)

const (
	defaultPort        = "8080"
	defaultCORSOrigins = "*"
	shutdownTimeout    = 15 * time.Second
)

type config struct {
	port         string
	corsOrigins  []string
	newsCacheTTL time.Duration
}

func main() {
	cfg := loadConfig()

	registry := feeds.DefaultRegistry()
	fetcher := feeds.NewFetcher()
	aggregator := feeds.NewAggregator(registry, fetcher)
	newsCache := news.NewCache(aggregator, cfg.newsCacheTTL, time.Now)

	statusRepo := datastore.NewStatusCheckRepository()

	newsHandler := rh.NewNewsHandler(registry, newsCache)
	statusHandler := rh.NewStatusHandler(statusRepo)

	router := api.SetupRoutes(newsHandler, statusHandler, cfg.corsOrigins)

	log.Printf("INFO: Configured %d news sources across %d regions", registry.Count(), len(registry.Groups()))
	startServer(cfg.port, router)
}

func loadConfig() config {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = defaultCORSOrigins
	}

	cacheTTL := news.DefaultFreshness
	if raw := os.Getenv("NEWS_CACHE_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			log.Printf("WARNING: Invalid NEWS_CACHE_TTL_MINUTES %q, using default of %s.", raw, cacheTTL)
		} else {
			cacheTTL = time.Duration(minutes) * time.Minute
		}
	}

	return config{
		port:         port,
		corsOrigins:  strings.Split(corsOrigins, ","),
		newsCacheTTL: cacheTTL,
	}
}

func startServer(port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
