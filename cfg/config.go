package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is wrapped by every error about a required variable that is unset.
var ErrMissingEnv = errors.New("missing env")

type SerpApiClientConfig struct {
	BaseURL string
	APIKey  string
	Engine  string
	Timeout time.Duration
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv          string
	AppPort         string
	SnowflakeNodeID int64
	SerpApiConfig   SerpApiClientConfig
	Observability   ObservabilityConfig
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := getEnv("APP_ENV", "development")
	appPort := getEnv("APP_PORT", "8080")

	apiKey := mustEnv("SERPAPI_API_KEY", &errs)
	baseURL := getEnv("SERPAPI_BASE_URL", "https://serpapi.com/search.json")
	engine := getEnv("SERPAPI_ENGINE", "google_flights")
	timeoutSeconds := getEnvAsInt("SERPAPI_TIMEOUT_SECONDS", 10, &errs)
	nodeID := getEnvAsInt("SNOWFLAKE_NODE_ID", 1, &errs)

	if timeoutSeconds <= 0 {
		errs = append(errs, errors.New("invalid env: SERPAPI_TIMEOUT_SECONDS must be positive"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		SnowflakeNodeID: int64(nodeID),
		SerpApiConfig: SerpApiClientConfig{
			BaseURL: baseURL,
			APIKey:  apiKey,
			Engine:  engine,
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		Observability: ObservabilityConfig{
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "flightsearch"),
			Environment:  appEnv,
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Errorf("%w: %s", ErrMissingEnv, key))
	}
	return value
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return defaultValue
	}
	return n
}
