package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string     // Application port
	DBUser        string     // Database user
	DBPassword    string     // Database password
	DBHost        string     // Database host
	DBPort        string     // Database port
	DBName        string     // Database name
	SessionSecret string     // Key used to sign the identity cookie
	RedisAddr     string     // Redis server address, empty disables the task cache
	RedisPass     string     // Redis password
	RedisDB       int        // Redis database number
	IsProd        bool       // Is production environment
	Mail          MailConfig // Outgoing mail settings
}

// MailConfig holds the SMTP account used for notifications.
// The defaults are placeholders and will not authenticate anywhere.
type MailConfig struct {
	Username string // SMTP login
	Password string // SMTP password or app password
	From     string // Envelope and header sender
	Host     string // SMTP server host
	Port     int    // SMTP server port (STARTTLS)
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	mailUser := getEnv("MAIL_USERNAME", "your-email@gmail.com")
	return &Config{
		AppPort:       getEnv("APP_PORT", "8000"),            // Application port
		DBUser:        getEnv("DB_USER", "root"),             // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),              // Database password
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),        // Database host
		DBPort:        getEnv("DB_PORT", "3306"),             // Database port
		DBName:        getEnv("DB_NAME", "todo"),             // Database name
		SessionSecret: getEnv("SESSION_SECRET", "change-me"), // Cookie signing key
		RedisAddr:     os.Getenv("REDIS_ADDR"),               // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),               // Redis password
		RedisDB:       getEnvInt("REDIS_DB", 0),              // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true",        // Is production environment
		Mail: MailConfig{
			Username: mailUser,
			Password: getEnv("MAIL_PASSWORD", "your-app-password"),
			From:     getEnv("MAIL_FROM", mailUser),
			Host:     getEnv("MAIL_SERVER", "smtp.gmail.com"),
			Port:     getEnvInt("MAIL_PORT", 587),
		},
	}
}

// DSN returns the MySQL data source name for GORM
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
