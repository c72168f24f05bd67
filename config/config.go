// Package config loads and validates application configuration from
// environment variables. Required variables, defaults, and parse failures are
// all collected so a misconfigured deployment reports every problem at once
// instead of failing one variable at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DatabaseConfig holds the settings for the PostgreSQL connection pool.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxConns int
}

// AuthConfig holds the credential and token settings. JWTSecret is read once
// at startup and must never change while the process serves requests: every
// token issued is verified against it.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string
	// TokenDuration is the validity window of an issued token.
	TokenDuration time.Duration
	// BcryptCost is the adaptive work factor for password hashing. It is
	// embedded in every stored hash, so raising it later does not invalidate
	// hashes produced under the old cost.
	BcryptCost int
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
}

// getRequiredEnv reads a mandatory variable, recording an error when absent.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads a variable, falling back to a default when absent.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an integer variable. Parse failures are recorded
// and the default is used.
func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvDuration reads a time.Duration variable ("15m", "24h", ...).
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the connection pool size within sane bounds.
func clampPoolSize(size int, varName string, errs *[]string) int {
	if size < 2 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 2, clamping to 2", varName, size))
		return 2
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig builds an AppConfig from the environment. All problems found
// while loading are aggregated into a single error.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	dbMaxConns := clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	database := &DatabaseConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxConns: dbMaxConns,
	}

	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenDuration := getOptionalEnvDuration("JWT_TOKEN_DURATION", 24*time.Hour, &errs)
	bcryptCost := getOptionalEnvInt("BCRYPT_COST", bcrypt.DefaultCost, &errs)
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("invalid BCRYPT_COST %d: must be between %d and %d", bcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if tokenDuration <= 0 {
		errs = append(errs, fmt.Sprintf("invalid JWT_TOKEN_DURATION %s: must be positive", tokenDuration))
	}

	auth := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
		BcryptCost:    bcryptCost,
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Database: database,
		Auth:     auth,
		Server:   server,
	}, nil
}
