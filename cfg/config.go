package cfg

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type FlightsAPIConfig struct {
	BaseURL string
	Marker  string
}

type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

type Config struct {
	AppEnv            string
	AppPort           string
	RedisConfig       RedisConfig
	FlightsAPIConfig  FlightsAPIConfig
	PollConfig        PollConfig
	ResultsTTLMinutes int
	RedisEnabled      bool
}

func Load() (*Config, error) {
	var errs []error

	// Missing .env is fine when env vars come from the orchestrator.
	_ = godotenv.Load()

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	flightsBaseURL := mustEnv("FLIGHTS_API_BASE_URL", &errs)
	flightsMarker := mustEnv("FLIGHTS_API_MARKER", &errs)

	redisEnabled := envBool("REDIS_ENABLED", true)

	var redisHost, redisPort, redisPassword string
	if redisEnabled {
		redisHost = mustEnv("REDIS_HOST", &errs)
		redisPort = mustEnv("REDIS_PORT", &errs)
		redisPassword = os.Getenv("REDIS_PASSWORD")
	}

	resultsTTLMinutes := envInt("RESULTS_TTL_MINUTES", 10, &errs)
	pollIntervalMs := envInt("POLL_INTERVAL_MS", 3000, &errs)
	pollMaxAttempts := envInt("POLL_MAX_ATTEMPTS", 12, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		FlightsAPIConfig: FlightsAPIConfig{
			BaseURL: flightsBaseURL,
			Marker:  flightsMarker,
		},
		PollConfig: PollConfig{
			Interval:    time.Duration(pollIntervalMs) * time.Millisecond,
			MaxAttempts: pollMaxAttempts,
		},
		ResultsTTLMinutes: resultsTTLMinutes,
		RedisEnabled:      redisEnabled,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1" || value == "yes"
}

func envInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}
