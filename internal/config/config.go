package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Blockchain BlockchainConfig
	Payment    PaymentConfig
	Security   SecurityConfig
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

// BlockchainConfig holds ledger node access configuration
type BlockchainConfig struct {
	RPCURL     string
	ChainID    int64
	Network    string
	RPCTimeout time.Duration
}

// PaymentConfig holds the immutable verification policy. It is passed into
// the payment service at construction, never read from ambient state.
type PaymentConfig struct {
	WalletAddress         string
	AmountETH             float64
	AmountTolerance       float64
	RequiredConfirmations uint64
	ExpiryHours           int
}

// SecurityConfig holds admin credentials and encryption keys
type SecurityConfig struct {
	AdminPasswordHash    string
	SessionEncryptionKey string
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
			DBName:   getEnv("DB_NAME", "jcorp"),
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
		Blockchain: BlockchainConfig{
			RPCURL:     getEnv("RPC_URL", "https://eth.llamarpc.com"),
			ChainID:    int64(getEnvAsInt("CHAIN_ID", 1)),
			Network:    getEnv("NETWORK_NAME", "Ethereum Mainnet"),
			RPCTimeout: getEnvAsDuration("RPC_TIMEOUT", 10*time.Second),
		},
		Payment: PaymentConfig{
			WalletAddress:         getEnv("WALLET_ADDRESS", ""),
			AmountETH:             getEnvAsFloat("PAYMENT_AMOUNT_ETH", 0.01),
			AmountTolerance:       getEnvAsFloat("PAYMENT_AMOUNT_TOLERANCE", 0.0001),
			RequiredConfirmations: uint64(getEnvAsInt("REQUIRED_CONFIRMATIONS", 3)),
			ExpiryHours:           getEnvAsInt("PAYMENT_EXPIRY_HOURS", 24),
		},
		Security: SecurityConfig{
			AdminPasswordHash:    getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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
