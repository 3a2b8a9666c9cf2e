package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT string
	// document store config
	DATASTORE_PROJECT_ID string
	// result cache config
	CACHE_MAX_ENTRIES     int
	CACHE_EMPLOYEES_TTL   time.Duration
	CACHE_EMPLOYEE_TTL    time.Duration
	CACHE_DEPARTMENTS_TTL time.Duration
	// search config; empty disables Elasticsearch and the service falls
	// back to store-side filtering
	ELASTICSEARCH_URL string
	// logger config
	LOG_FILE_PATH string
}

func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:              getEnvString("APP_PORT", "8080"),
		DATASTORE_PROJECT_ID:  getEnvString("DATASTORE_PROJECT_ID", ""),
		CACHE_MAX_ENTRIES:     getEnvInt("CACHE_MAX_ENTRIES", 1024),
		CACHE_EMPLOYEES_TTL:   getEnvDuration("CACHE_EMPLOYEES_TTL", 5*time.Minute),
		CACHE_EMPLOYEE_TTL:    getEnvDuration("CACHE_EMPLOYEE_TTL", 10*time.Minute),
		CACHE_DEPARTMENTS_TTL: getEnvDuration("CACHE_DEPARTMENTS_TTL", 30*time.Minute),
		ELASTICSEARCH_URL:     getEnvString("ELASTICSEARCH_URL", ""),
		LOG_FILE_PATH:         getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
