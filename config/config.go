package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPort                 = "3000"
	DefaultTimezone             = "Asia/Bangkok"
	DefaultExpiryWindowDays     = 30
	DefaultWriteBackConcurrency = 8
	DefaultHTTPTimeout          = 15 * time.Second
	DefaultCacheTTL             = 30 * time.Second
	DefaultReminderCron         = "0 9 * * *"
)

type Config struct {
	Port string
	Host string

	SheetDataURL   string
	SheetWriteURL  string
	SheetUpdateURL string
	HTTPTimeout    time.Duration

	Location             *time.Location
	ExpiryWindowDays     int
	WriteBackConcurrency int

	DBURL        string
	RedisAddress string
	CacheTTL     time.Duration

	ReminderCron       string
	ReminderSMSEnabled bool
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioPhoneNumber  string

	CORSOrigins []string
	LogLevel    string
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logg.Debug("No .env file found")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Bad numbers and durations fall back to
// their defaults; an unknown timezone is an error.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:               orDefault(getenv("PORT"), DefaultPort),
		Host:               getenv("HOST"),
		SheetDataURL:       strings.TrimSpace(getenv("SHEET_DATA_URL")),
		SheetWriteURL:      strings.TrimSpace(getenv("SHEET_WEBHOOK_URL")),
		SheetUpdateURL:     strings.TrimSpace(getenv("SHEET_UPDATE_URL")),
		DBURL:              getenv("DB_URL"),
		RedisAddress:       getenv("REDIS_ADDRESS"),
		ReminderCron:       orDefault(getenv("REMINDER_CRON"), DefaultReminderCron),
		ReminderSMSEnabled: parseBool("REMINDER_SMS_ENABLED", getenv("REMINDER_SMS_ENABLED")),
		TwilioAccountSID:   getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:  getenv("TWILIO_PHONE_NUMBER"),
		CORSOrigins:        splitList(getenv("CORS_ORIGINS")),
		LogLevel:           orDefault(getenv("LOG_LEVEL"), "info"),
	}
	if cfg.SheetUpdateURL == "" {
		cfg.SheetUpdateURL = cfg.SheetWriteURL
	}

	cfg.HTTPTimeout = parseDuration("HTTP_TIMEOUT", getenv("HTTP_TIMEOUT"), DefaultHTTPTimeout)
	cfg.CacheTTL = parseDuration("CACHE_TTL", getenv("CACHE_TTL"), DefaultCacheTTL)
	cfg.ExpiryWindowDays = parsePositiveInt("EXPIRY_WINDOW_DAYS", getenv("EXPIRY_WINDOW_DAYS"), DefaultExpiryWindowDays)
	cfg.WriteBackConcurrency = parsePositiveInt("WRITEBACK_CONCURRENCY", getenv("WRITEBACK_CONCURRENCY"), DefaultWriteBackConcurrency)

	loc, err := time.LoadLocation(orDefault(getenv("APP_TIMEZONE"), DefaultTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// SMSConfigured reports whether reminders can be sent.
func (c Config) SMSConfigured() bool {
	return c.ReminderSMSEnabled && c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(key, value string) bool {
	if value == "" {
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		logg.WithFields(logrus.Fields{"key": key, "value": value}).Warn("invalid boolean, using false")
		return false
	}
	return b
}

func parsePositiveInt(key, value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		logg.WithFields(logrus.Fields{"key": key, "value": value}).Warn("invalid number, using default")
		return fallback
	}
	return n
}

func parseDuration(key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		logg.WithFields(logrus.Fields{"key": key, "value": value}).Warn("invalid duration, using default")
		return fallback
	}
	return d
}
