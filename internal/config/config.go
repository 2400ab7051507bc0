package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	SeedData  bool
	Database  DatabaseConfig
	Mail      MailConfig
	LateLoans LateLoansConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MailConfig holds SMTP configuration
type MailConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	DefaultSender string
	Subject       string
}

// LateLoansConfig holds the late loan reminder job configuration
type LateLoansConfig struct {
	Enabled  bool
	Schedule string
	Message  string
	Days     int
}

// Defaults for the late loan reminder
const (
	DefaultLateLoansSchedule = "0 0 * * *"
	DefaultLateLoansMessage  = "Atenção! Você tem um empréstimo atrasado. Favor devolver o livro o mais rápido possível."
	DefaultMailSubject       = "Livro com empréstimo atrasado."
)

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	mail, err := loadMailConfig()
	if err != nil {
		return nil, err
	}

	lateLoans, err := loadLateLoansConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		SeedData:  getEnvBool("SEED_DATA", false),
		Database:  database,
		Mail:      mail,
		LateLoans: lateLoans,
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql")))
	defaultPort := "3306"
	switch driver {
	case "mysql":
	case "postgres":
		defaultPort = "5432"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'postgres')", driver)
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "library"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", "disable"),
	}, nil
}

// loadMailConfig loads SMTP config
func loadMailConfig() (MailConfig, error) {
	port, err := strconv.Atoi(getEnv("MAIL_PORT", "587"))
	if err != nil {
		return MailConfig{}, fmt.Errorf("invalid MAIL_PORT: %w", err)
	}

	return MailConfig{
		Host:          getEnv("MAIL_HOST", "localhost"),
		Port:          port,
		Username:      getEnv("MAIL_USERNAME", ""),
		Password:      getEnv("MAIL_PASSWORD", ""),
		DefaultSender: getEnv("MAIL_DEFAULT_SENDER", "library-api@localhost"),
		Subject:       getEnv("MAIL_SUBJECT", DefaultMailSubject),
	}, nil
}

// loadLateLoansConfig loads the reminder job config
func loadLateLoansConfig() (LateLoansConfig, error) {
	schedule := getEnv("LATE_LOANS_CRON", DefaultLateLoansSchedule)
	if _, err := cron.ParseStandard(schedule); err != nil {
		return LateLoansConfig{}, fmt.Errorf("invalid LATE_LOANS_CRON '%s': %w", schedule, err)
	}

	days, err := strconv.Atoi(getEnv("LATE_LOANS_DAYS", "4"))
	if err != nil || days < 1 {
		return LateLoansConfig{}, fmt.Errorf("invalid LATE_LOANS_DAYS: must be a positive integer")
	}

	return LateLoansConfig{
		Enabled:  getEnvBool("LATE_LOANS_ENABLED", true),
		Schedule: schedule,
		Message:  getEnv("LATE_LOANS_MESSAGE", DefaultLateLoansMessage),
		Days:     days,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets boolean environment variable, falling back on parse errors
func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
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
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return origins
}
