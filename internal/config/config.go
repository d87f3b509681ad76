package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Overtime   OvertimeConfig
	CompOff    CompOffConfig
	Calendar   CalendarConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the shared secret used to verify access tokens.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
	Timezone       *time.Location
	MigrateOnStart bool
}

type AttendanceConfig struct {
	GraceMinutes        int
	DefaultBreakMinutes int
}

// OvertimeMatching selects how approved overtime is matched against worked time.
type OvertimeMatching string

const (
	// MatchByBudget sums every approved request on the date into one hour budget.
	MatchByBudget OvertimeMatching = "budget"
	// MatchByWindow additionally requires worked time to fall inside an approved clock window.
	MatchByWindow OvertimeMatching = "window"
)

// NoSchedulePolicy decides the baseline when an employee has no schedule for the date.
type NoSchedulePolicy string

const (
	NoScheduleDailyMax   NoSchedulePolicy = "daily_max"
	NoScheduleNoOvertime NoSchedulePolicy = "no_overtime"
)

type OvertimeConfig struct {
	Matching   OvertimeMatching
	NoSchedule NoSchedulePolicy
	NightStart string
}

type CompOffConfig struct {
	ExpiryMonths   int
	ExpiryInterval time.Duration
}

type CalendarConfig struct {
	Path string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, reading configuration from environment")
	}

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
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		Timezone:       loc,
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance configuration
	grace, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_MINUTES: %w", err)
	}
	defaultBreak, err := strconv.Atoi(getEnv("ATTENDANCE_DEFAULT_BREAK_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_DEFAULT_BREAK_MINUTES: %w", err)
	}
	config.Attendance = AttendanceConfig{
		GraceMinutes:        grace,
		DefaultBreakMinutes: defaultBreak,
	}

	// Overtime configuration
	config.Overtime = OvertimeConfig{
		Matching:   OvertimeMatching(getEnv("OVERTIME_MATCHING", string(MatchByBudget))),
		NoSchedule: NoSchedulePolicy(getEnv("OVERTIME_NO_SCHEDULE_POLICY", string(NoScheduleDailyMax))),
		NightStart: getEnv("NIGHT_START", "22:00"),
	}

	// Comp-off configuration
	expiryMonths, err := strconv.Atoi(getEnv("COMPOFF_EXPIRY_MONTHS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPOFF_EXPIRY_MONTHS: %w", err)
	}
	expiryInterval, err := time.ParseDuration(getEnv("COMPOFF_EXPIRY_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPOFF_EXPIRY_INTERVAL: %w", err)
	}
	config.CompOff = CompOffConfig{
		ExpiryMonths:   expiryMonths,
		ExpiryInterval: expiryInterval,
	}

	config.Calendar = CalendarConfig{
		Path: getEnv("HOLIDAY_CALENDAR_PATH", "config/holidays.yaml"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_GRACE_MINUTES must not be negative")
	}
	if c.Attendance.DefaultBreakMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_DEFAULT_BREAK_MINUTES must not be negative")
	}
	switch c.Overtime.Matching {
	case MatchByBudget, MatchByWindow:
	default:
		return fmt.Errorf("OVERTIME_MATCHING must be %q or %q, got %q", MatchByBudget, MatchByWindow, c.Overtime.Matching)
	}
	switch c.Overtime.NoSchedule {
	case NoScheduleDailyMax, NoScheduleNoOvertime:
	default:
		return fmt.Errorf("OVERTIME_NO_SCHEDULE_POLICY must be %q or %q, got %q", NoScheduleDailyMax, NoScheduleNoOvertime, c.Overtime.NoSchedule)
	}
	if _, err := time.Parse("15:04", c.Overtime.NightStart); err != nil {
		return fmt.Errorf("NIGHT_START must be HH:MM: %w", err)
	}
	if c.CompOff.ExpiryMonths < 1 {
		return fmt.Errorf("COMPOFF_EXPIRY_MONTHS must be at least 1")
	}
	if c.CompOff.ExpiryInterval <= 0 {
		return fmt.Errorf("COMPOFF_EXPIRY_INTERVAL must be positive")
	}
	if c.Calendar.Path == "" {
		return fmt.Errorf("HOLIDAY_CALENDAR_PATH is required")
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

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
