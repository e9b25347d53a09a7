package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int
	Env  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	UploadDir    string
	KafkaAddress string
	LogLevel     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		Port: envIntDefault("PORT", 3000),
		Env:  envDefault("APP_ENV", "development"),

		DBHost:     envDefault("DB_HOST", "localhost"),
		DBPort:     envDefault("DB_PORT", "5432"),
		DBUser:     envDefault("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envDefault("DB_NAME", "myapp"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: envIntDefault("BCRYPT_COST", 0),

		UploadDir:    envDefault("UPLOAD_DIR", "uploads"),
		KafkaAddress: os.Getenv("KAFKA_ADDRESS"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	ttl, err := time.ParseDuration(envDefault("JWT_EXPIRES_IN", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	cfg.TokenTTL = ttl

	if cfg.LogLevel == "" {
		if cfg.Production() {
			cfg.LogLevel = "info"
		} else {
			cfg.LogLevel = "debug"
		}
	}

	// No secrets hard-coded: a production deployment must bring its own.
	if cfg.Production() {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		if cfg.DBPassword == "" {
			return nil, fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
