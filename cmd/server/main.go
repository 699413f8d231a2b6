package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dharmasatrya/ticketstore/internal/aggregator"
	"github.com/dharmasatrya/ticketstore/internal/booking"
	"github.com/dharmasatrya/ticketstore/internal/cache"
	"github.com/dharmasatrya/ticketstore/internal/catalog"
	"github.com/dharmasatrya/ticketstore/internal/ratelimit"
	"github.com/dharmasatrya/ticketstore/internal/server"
	"github.com/dharmasatrya/ticketstore/internal/timezone"
)

type Config struct {
	Port         string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration
	Timezone     string

	BookingDelay       time.Duration
	BookingFailureRate float64
	BookingRateLimit   float64
	BookingRateBurst   int
}

func main() {
	cfg := loadConfig()

	loc := timezone.GetLocationByName(cfg.Timezone)

	catalogs, err := catalog.NewAll(catalog.Options{Location: loc})
	if err != nil {
		log.Fatalf("Failed to initialize catalogs: %v", err)
	}
	log.Printf("Initialized %d ticket catalogs", len(catalogs))

	var ticketCache cache.Cache
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		ticketCache = redisCache
		log.Printf("Redis cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		ticketCache = cache.NewNoOpCache()
		log.Println("Cache disabled")
	}
	defer ticketCache.Close()

	catalogLimiter := ratelimit.NewKeyedLimiterWithDefaults()
	catalogLimiter.SetLimit("flights", 20, 30)
	catalogLimiter.SetLimit("trains", 15, 25)
	catalogLimiter.SetLimit("buses", 15, 25)

	agg := aggregator.NewAggregator(catalogs, aggregator.Config{
		Timeout:    2 * time.Second,
		MaxRetries: 3,
		RetryDelays: []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		},
		RateLimiter: catalogLimiter,
		Cache:       ticketCache,
	})

	bookingService := booking.NewService(booking.Config{
		Delay:       cfg.BookingDelay,
		FailureRate: cfg.BookingFailureRate,
	})
	bookingLimiter := ratelimit.NewKeyedLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.BookingRateLimit,
		BurstSize:         cfg.BookingRateBurst,
	})

	e := server.New(server.Deps{
		Catalogs:       catalogs,
		Cache:          ticketCache,
		Aggregator:     agg,
		Booking:        bookingService,
		BookingLimiter: bookingLimiter,
		Location:       loc,
		RequestLog:     true,
	})

	log.Printf("Starting ticket storefront on port %s (booking delay %v, failure rate %.2f)",
		cfg.Port, cfg.BookingDelay, cfg.BookingFailureRate)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	defaults := booking.DefaultConfig()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		CacheEnabled: getEnvBool("CACHE_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),
		Timezone:     getEnv("TICKET_TIMEZONE", "IRST"),

		BookingDelay:       getEnvDuration("BOOKING_DELAY", defaults.Delay),
		BookingFailureRate: getEnvFloat("BOOKING_FAILURE_RATE", defaults.FailureRate),
		BookingRateLimit:   getEnvFloat("BOOKING_RATE_LIMIT", 5),
		BookingRateBurst:   getEnvInt("BOOKING_RATE_BURST", 10),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
