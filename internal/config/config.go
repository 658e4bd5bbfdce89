package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
)

type GeneralConfig struct {
	Env      string
	LogLevel string
	Port     int
}

// DatabaseConfig describes the backing store. The URL scheme selects the
// backend: postgres://, mongodb:// (or mongodb+srv://) or memory://.
type DatabaseConfig struct {
	URL               string
	ConnectTimeout    time.Duration
	MaxOpenConns      int
	MaxIdleConns      int
	ConnMaxLifetime   time.Duration
	ConnMaxIdleTime   time.Duration
	MigrationsEnabled bool
}

type appConfig struct {
	GeneralConfig  GeneralConfig
	DatabaseConfig DatabaseConfig
}

// ErrMissingDatabaseURL is returned by Validate when no store is configured
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

// LoadConfigs loads the configurations from the environment variables
func LoadConfigs() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env files: %v", err)
	}

	loadGeneralConfigs()
	loadDatabaseConfigs()
}

var AppConfigInstance appConfig

// Validate reports configuration that makes startup impossible
func (c appConfig) Validate() error {
	if c.DatabaseConfig.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// loadGeneralConfigs loads the general configurations from the environment variables
func loadGeneralConfigs() {
	AppConfigInstance.GeneralConfig.Env = getEnv("APP_ENV", "dev")
	AppConfigInstance.GeneralConfig.LogLevel = getEnv("LOG_LEVEL", "info")
	AppConfigInstance.GeneralConfig.Port = getEnvInt("PORT", 8080)
}

// loadDatabaseConfigs reads DATABASE_URL, falling back to MONGODB_URI
func loadDatabaseConfigs() {
	url := getEnv("DATABASE_URL", "")
	if url == "" {
		url = getEnv("MONGODB_URI", "")
	}

	AppConfigInstance.DatabaseConfig = DatabaseConfig{
		URL:               url,
		ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
		MaxOpenConns:      getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:      getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:   getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime:   getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		MigrationsEnabled: getEnvBool("DB_RUN_MIGRATIONS", true),
	}
}
