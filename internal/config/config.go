package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Office   OfficePolicy
	Sweep    SweepConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port          int
	Env           string
	LogLevel      string
	StorageDriver string // "postgres" or "memory"
}

// SweepConfig controls when the absence sweep fires.
type SweepConfig struct {
	Hour int // office-local hour, after end of business day
}

// Load reads configuration from the environment, with .env support.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:          appPort,
		Env:           getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StorageDriver: getEnv("STORAGE_DRIVER", "postgres"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Office policy configuration
	office, err := loadOfficePolicy()
	if err != nil {
		return nil, err
	}
	config.Office = office

	sweepHour, err := strconv.Atoi(getEnv("ABSENCE_SWEEP_HOUR", "18"))
	if err != nil || sweepHour < 0 || sweepHour > 23 {
		return nil, fmt.Errorf("invalid ABSENCE_SWEEP_HOUR: must be 0-23")
	}
	config.Sweep = SweepConfig{Hour: sweepHour}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadOfficePolicy() (OfficePolicy, error) {
	start, err := parseClockMinutes(getEnv("OFFICE_START", "09:00"))
	if err != nil {
		return OfficePolicy{}, fmt.Errorf("invalid OFFICE_START: %w", err)
	}
	late, err := parseClockMinutes(getEnv("LATE_THRESHOLD", "09:30"))
	if err != nil {
		return OfficePolicy{}, fmt.Errorf("invalid LATE_THRESHOLD: %w", err)
	}
	end, err := parseClockMinutes(getEnv("OFFICE_END", "17:00"))
	if err != nil {
		return OfficePolicy{}, fmt.Errorf("invalid OFFICE_END: %w", err)
	}

	breakMinutes, err := strconv.Atoi(getEnv("BREAK_DURATION_MINUTES", "30"))
	if err != nil || breakMinutes < 0 {
		return OfficePolicy{}, fmt.Errorf("invalid BREAK_DURATION_MINUTES")
	}

	workingDays, err := strconv.Atoi(getEnv("WORKING_DAYS_PER_MONTH", "22"))
	if err != nil || workingDays < 1 {
		return OfficePolicy{}, fmt.Errorf("invalid WORKING_DAYS_PER_MONTH")
	}

	tz := getEnv("OFFICE_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return OfficePolicy{}, fmt.Errorf("invalid OFFICE_TIMEZONE %q: %w", tz, err)
	}

	return OfficePolicy{
		OfficeStart:         start,
		LateThreshold:       late,
		OfficeEnd:           end,
		BreakMinutes:        breakMinutes,
		WorkingDaysPerMonth: workingDays,
		Location:            loc,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.StorageDriver != "postgres" && c.App.StorageDriver != "memory" {
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory")
	}
	if c.App.StorageDriver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Office.LateThreshold < c.Office.OfficeStart {
		return fmt.Errorf("LATE_THRESHOLD must not be before OFFICE_START")
	}
	if c.Office.OfficeEnd <= c.Office.LateThreshold {
		return fmt.Errorf("OFFICE_END must be after LATE_THRESHOLD")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
