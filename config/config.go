package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	// External document field extractor
	ExtractorApiUrl     string
	ExtractorApiKey     string // empty key selects the deterministic stub
	ExtractorTimeoutSec int

	// Field matcher tolerances
	NameEditDistance   int
	IncomeTolerancePct float64

	// Scheme suggestion source
	SearchApiUrl string
	SearchApiKey string

	EmailSender string
	Password    string // SMTP Password

	KitOutputDir string
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
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "seva"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ExtractorApiUrl:     getEnv("EXTRACTOR_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"),
		ExtractorApiKey:     getEnv("EXTRACTOR_API_KEY", ""),
		ExtractorTimeoutSec: getEnvInt("EXTRACTOR_TIMEOUT_SEC", 20),

		NameEditDistance:   getEnvInt("NAME_EDIT_DISTANCE", 2),
		IncomeTolerancePct: getEnvFloat("INCOME_TOLERANCE_PCT", 5),

		SearchApiUrl: getEnv("SEARCH_API_URL", ""),
		SearchApiKey: getEnv("SEARCH_API_KEY", ""),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		KitOutputDir: getEnv("KIT_OUTPUT_DIR", "public/kits"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ExtractorApiKey == "" {
		log.Println("Warning: EXTRACTOR_API_KEY not set. Using deterministic stub extractor.")
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

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvFloat retrieves an environment variable as a float or returns the default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return floatValue
}
