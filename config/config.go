package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	EmailSender string
	Password    string // SMTP Password

	MailApiURL string // Optional HTTP mail API, used instead of SMTP when set
	MailApiKey string

	NotificationsEnabled bool // Global toggle for learner emails

	ReviewDigestCron string // Schedule for the pending-review digest
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "lms"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		MailApiURL: getEnv("MAIL_API_URL", ""),
		MailApiKey: getEnv("MAIL_API_KEY", ""),

		NotificationsEnabled: getEnvBool("NOTIFICATIONS_ENABLED", true),

		ReviewDigestCron: getEnv("REVIEW_DIGEST_CRON", "0 9 * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if !AppConfig.NotificationsEnabled {
		log.Println("Notifications disabled. Review decision emails will be skipped.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves an environment variable as a boolean or returns the default boolean value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
