package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Wallet   WalletConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// WalletConfig holds wallet authentication configuration
type WalletConfig struct {
	ChainID       string
	AddressPrefix string
	AddressFormat string // "bech32" or "evm"
	SignDocPrefix string
	NonceTTL      time.Duration
	VisitorTTL    time.Duration
}

// SecurityConfig holds security toggles
type SecurityConfig struct {
	AllowAnonymousAuth bool
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shieldnest"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Wallet: WalletConfig{
			ChainID:       getEnv("WALLET_CHAIN_ID", "coreum-mainnet-1"),
			AddressPrefix: getEnv("WALLET_ADDRESS_PREFIX", "core"),
			AddressFormat: getEnv("WALLET_ADDRESS_FORMAT", "bech32"),
			SignDocPrefix: getEnv("WALLET_SIGNDOC_PREFIX", "Sign in to ShieldNest"),
			NonceTTL:      getEnvAsDuration("WALLET_NONCE_TTL", 10*time.Minute),
			VisitorTTL:    getEnvAsDuration("VISITOR_WALLET_TTL", 30*24*time.Hour),
		},
		Security: SecurityConfig{
			AllowAnonymousAuth: getEnvAsBool("ALLOW_ANONYMOUS_AUTH", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
