package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For duration parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name
	RedisAddr     string        // Redis server address
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	SessionSecret string        // HMAC secret for session tokens
	SessionTTL    time.Duration // Idle timeout for server-side sessions
	DocumentDir   string        // Directory for generated document artifacts
	SMTPHost      string        // SMTP relay host
	SMTPPort      string        // SMTP relay port
	SMTPUser      string        // SMTP auth user
	SMTPPassword  string        // SMTP auth password
	SMTPFrom      string        // From address for outgoing mail
	TrackingURL   string        // Base URL of the external delivery tracker
	TrackingKey   string        // API key for the external delivery tracker
	ChromeURL     string        // Remote Chrome instance for PDF rendering, optional
	IsProd        bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	sessionTTL := 12 * time.Hour // Idle sessions expire after half a day
	if v, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && v > 0 {
		sessionTTL = v
	}
	docDir := os.Getenv("DOCUMENT_DIR")
	if docDir == "" {
		docDir = "documents" // Relative to the working directory by default
	}
	return &Config{
		AppPort:       os.Getenv("APP_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       redisDB,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    sessionTTL,
		DocumentDir:   docDir,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
		TrackingURL:   os.Getenv("TRACKING_API_URL"),
		TrackingKey:   os.Getenv("TRACKING_API_KEY"),
		ChromeURL:     os.Getenv("CHROME_REMOTE_URL"),
		IsProd:        os.Getenv("IS_PROD") == "true",
	}
}
