package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	JWTSecret  string
	DBPath     string

	// File handling
	MaxUploadBytes  int64
	AllowedMimes    []string
	FileGracePeriod time.Duration // delay between soft delete and physical purge
	ScanDelay       time.Duration // minimum age before the scan sweep picks a pending document

	// SMTP for notification mails
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

var defaultAllowedMimes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/csv",
}

var config *Config

// GetConfig loads configuration from the environment on first use.
func GetConfig() *Config {
	if config == nil {
		// .env is optional, real env vars win either way
		_ = godotenv.Load()

		config = &Config{
			ServerPort:      getEnv("SERVER_PORT", "3001"),
			JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			DBPath:          getEnv("DB_PATH", "/app/data/talenthub.db"),
			MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 10*1024*1024),
			AllowedMimes:    getEnvList("ALLOWED_MIME_TYPES", defaultAllowedMimes),
			FileGracePeriod: getEnvDuration("FILE_GRACE_PERIOD", 30*24*time.Hour),
			ScanDelay:       getEnvDuration("SCAN_DELAY", 5*time.Second),
			SMTPHost:        os.Getenv("SMTP_HOST"),
			SMTPPort:        getEnv("SMTP_PORT", "587"),
			SMTPUser:        os.Getenv("SMTP_USER"),
			SMTPPass:        os.Getenv("SMTP_PASS"),
			SMTPFrom:        getEnv("SMTP_FROM", "noreply@talenthub.local"),
		}

		log.Printf("Config loaded - ServerPort: %s, DBPath: %s", config.ServerPort, config.DBPath)
	}
	return config
}

// MimeAllowed reports whether mime is on the upload allow-list.
func (c *Config) MimeAllowed(mime string) bool {
	for _, m := range c.AllowedMimes {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
