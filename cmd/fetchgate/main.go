package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"fetchgate/pkg/cache"
	"fetchgate/pkg/fetch"
	"fetchgate/pkg/logging"
)

func main() {
	// Configuration from environment
	port := getEnv("PORT", "8080")
	redisURL := getEnv("REDIS_URL", "")
	userAgent := getEnv("USER_AGENT", fetch.DefaultUserAgent)
	logLevel := getEnv("LOG_LEVEL", "info")

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(logLevel),
		Output: os.Stderr,
	})

	cfg := fetch.DefaultConfig()
	cfg.UserAgent = userAgent
	cfg.RateLimit = getEnvFloat("RATE_LIMIT", 0)
	cfg.MaxConcurrency = getEnvInt("MAX_CONCURRENCY", 0)
	cfg.Retries = getEnvInt("RETRIES", fetch.DefaultRetries)
	cfg.Timeout = getEnvDuration("TIMEOUT", fetch.DefaultTimeout)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", fetch.DefaultCacheTTL)

	// Redis is optional; without it the in-memory cache serves one process.
	var redisClient *redis.Client
	if redisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: redisURL})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to connect to Redis")
		}
		cfg.Store = cache.NewRedisStore(redisClient)
		logger.Info().Str("redis_url", redisURL).Msg("Connected to Redis")
	} else {
		logger.Info().Msg("REDIS_URL not set, using in-memory cache")
	}

	scraper, err := fetch.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create fetch engine")
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/ready", readyHandler(redisClient))
	http.HandleFunc("/fetch", fetchHandler(scraper))
	http.HandleFunc("/batch", batchHandler(scraper))
	http.HandleFunc("/stats", statsHandler(scraper))
	http.Handle("/metrics", promhttp.Handler())

	addr := ":" + port
	logger.Info().
		Str("addr", addr).
		Str("user_agent", userAgent).
		Float64("rate_limit", cfg.RateLimit).
		Msg("Starting fetchgate server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// readyHandler reports readiness. With Redis configured, readiness means
// Redis answers a ping; without it the process is always ready.
func readyHandler(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				http.Error(w, fmt.Sprintf("redis unavailable: %v", err), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	}
}

// fetchHandler serves GET /fetch?url=... and returns the outcome as JSON.
// Ordinary fetch failures are part of the payload, not HTTP errors; only a
// missing url parameter is a 400.
func fetchHandler(scraper *fetch.Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if raw == "" {
			http.Error(w, "missing url parameter", http.StatusBadRequest)
			return
		}

		outcome := scraper.Scrape(r.Context(), raw)
		writeJSON(w, outcome)
	}
}

type batchRequest struct {
	URLs []string `json:"urls"`
}

// batchHandler serves POST /batch with a JSON body {"urls": [...]}. The
// response is one outcome per input URL, in input order.
func batchHandler(scraper *fetch.Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		outcomes := scraper.ScrapeMany(r.Context(), req.URLs)
		writeJSON(w, outcomes)
	}
}

func statsHandler(scraper *fetch.Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, scraper.Stats())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
