package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecretKey = "supersecretkey"

// Config holds all configuration for the application
type Config struct {
	AppMode      string
	Port         string
	Debug        bool
	SecretKey    string
	Database     DatabaseConfig
	Session      SessionConfig
	Cookie       CookieConfig
	Mail         MailConfig
	Admin        AdminConfig
	Registration RegistrationConfig
	Election     ElectionConfig
	RateLimit    RateLimitConfig
	RosterPath   string
	UploadDir    string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // sqlite, mysql or postgres
	DSN      string // full DSN; for sqlite the database file path
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig controls signed session tokens
type SessionConfig struct {
	TTL time.Duration
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// MailConfig holds SMTP settings for one-time code delivery
type MailConfig struct {
	Server          string
	Port            int
	UseTLS          bool
	UseSSL          bool
	Username        string
	Password        string
	DefaultSender   string
	FallbackDisplay bool // reveal the code in the response when delivery is impossible
}

// Enabled reports whether credentials are present to attempt delivery
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

// AdminConfig holds bootstrap admin credentials
type AdminConfig struct {
	Username string
	Password string
}

// RegistrationConfig controls pending registrations
type RegistrationConfig struct {
	CodeTTL     time.Duration
	MaxAttempts int // 0 means unlimited
}

// ElectionConfig controls ballot validation
type ElectionConfig struct {
	StrictCandidates bool
}

// RateLimitConfig holds per-IP request limits per minute; 0 disables a limiter
type RateLimitConfig struct {
	General int
	Auth    int
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s, DB: %s]", cfg.AppMode, cfg.Database.Driver)
	return cfg, nil
}

// FromEnv builds a Config from the current process environment
func FromEnv() (*Config, error) {
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	db, err := loadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		if appMode == "prod" {
			return nil, errors.New("SECRET_KEY is required when APP_MODE=prod")
		}
		secret = devSecretKey
	}

	return &Config{
		AppMode:      appMode,
		Port:         getEnv("PORT", "5000"),
		Debug:        getBool("DEBUG", false) || os.Getenv("FLASK_DEBUG") == "1",
		SecretKey:    secret,
		Database:     db,
		Session:      SessionConfig{TTL: time.Duration(getInt("SESSION_HOURS", 12)) * time.Hour},
		Cookie:       loadCookieConfig(),
		Mail:         loadMailConfig(),
		Admin:        AdminConfig{Username: getEnv("ADMIN_USERNAME", "Raju"), Password: getEnv("ADMIN_PASSWORD", "Raju@02")},
		Registration: loadRegistrationConfig(),
		Election:     ElectionConfig{StrictCandidates: getBool("STRICT_BALLOT", false)},
		RateLimit:    RateLimitConfig{General: getInt("RATE_LIMIT", 100), Auth: getInt("AUTH_RATE_LIMIT", 10)},
		RosterPath:   getEnv("ROSTER_PATH", "students.xlsx"),
		UploadDir:    getEnv("UPLOAD_DIR", "static/images"),
	}, nil
}

// loadDatabaseConfig loads database config for the selected driver
func loadDatabaseConfig() (DatabaseConfig, error) {
	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "sqlite")))

	d := DatabaseConfig{
		Driver:   driver,
		DSN:      os.Getenv("DB_DSN"),
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "college_voting"),
	}

	switch driver {
	case "sqlite":
		if d.DSN == "" {
			d.DSN = "database.db"
		}
	case "mysql":
		d.Port = getEnv("DB_PORT", "3306")
	case "postgres":
		d.Port = getEnv("DB_PORT", "5432")
		if os.Getenv("DB_USER") == "" {
			d.User = "postgres"
		}
	default:
		return d, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'sqlite', 'mysql' or 'postgres')", driver)
	}

	return d, nil
}

// loadCookieConfig loads cookie config
func loadCookieConfig() CookieConfig {
	return CookieConfig{
		Secure:   getBool("COOKIE_SECURE", false),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadMailConfig loads SMTP settings
func loadMailConfig() MailConfig {
	username := os.Getenv("MAIL_USERNAME")
	return MailConfig{
		Server:          getEnv("MAIL_SERVER", "smtp.gmail.com"),
		Port:            getInt("MAIL_PORT", 587),
		UseTLS:          getBool("MAIL_USE_TLS", true),
		UseSSL:          getBool("MAIL_USE_SSL", false),
		Username:        username,
		Password:        os.Getenv("MAIL_PASSWORD"),
		DefaultSender:   getEnv("MAIL_DEFAULT_SENDER", username),
		FallbackDisplay: getBool("MAIL_FALLBACK_DISCLOSE", true),
	}
}

// loadRegistrationConfig loads one-time code settings. Both limits are
// off unless set: codes never expire and wrong guesses are unlimited.
func loadRegistrationConfig() RegistrationConfig {
	maxAttempts := getInt("REGISTRATION_MAX_ATTEMPTS", 0)
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	ttlMinutes := getInt("REGISTRATION_TTL_MINUTES", 0)
	if ttlMinutes < 0 {
		ttlMinutes = 0
	}
	return RegistrationConfig{
		CodeTTL:     time.Duration(ttlMinutes) * time.Minute,
		MaxAttempts: maxAttempts,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return n
}

// getBool accepts true/1/yes and false/0/no, case-insensitive
func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
