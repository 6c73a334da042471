package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DB struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type MQ struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (m MQ) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", m.User, m.Password, m.Host, m.Port)
}

type Auth struct {
	Secret    string
	TokenTTLH int
}

type App struct {
	HTTPPort int
	// PublicBaseURL is the frontend origin table QR codes link to.
	PublicBaseURL string
	Database      DB
	Rabbit        MQ
	Auth          Auth
}

// Load reads configuration from the environment; a .env file is honored when
// present but never required.
func Load() (App, error) {
	_ = godotenv.Load()

	cfg := App{
		HTTPPort:      getEnvInt("HTTP_PORT", 5000),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		Database: DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "restaurant_pos"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Rabbit: MQ{
			Host:     getEnv("AMQP_HOST", "localhost"),
			Port:     getEnvInt("AMQP_PORT", 5672),
			User:     getEnv("AMQP_USER", "guest"),
			Password: getEnv("AMQP_PASSWORD", "guest"),
		},
		Auth: Auth{
			Secret:    getEnv("AUTH_SECRET", ""),
			TokenTTLH: getEnvInt("TOKEN_TTL_HOURS", 24),
		},
	}
	if cfg.Auth.Secret == "" {
		return App{}, fmt.Errorf("AUTH_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
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
