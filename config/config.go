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
	JWTKey    string
	SaltRound int

	SiteURL   string
	UploadDir string

	EmailSender string
	Password    string // SMTP App password

	// First free lesson override. When set (> 0) it takes precedence over the
	// dynamic first-lesson lookup for every course.
	FirstLessonID uint

	// Payment product -> course mapping. One global course per payment
	// product in the current design.
	PaymentCourseID  uint
	PaymentProductID string

	PaynetAPIURL       string
	PaynetMerchantCode string
	PaynetMerchantKey  string
	PaynetNotifySecret string
	PaynetEnv          string // "test" relaxes callback signature failures
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		SiteURL:   getEnv("SITE_URL", "http://localhost:3000"),
		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		FirstLessonID: uint(getEnvInt("FIRST_LESSON_ID", 0)),

		PaymentCourseID:  uint(getEnvInt("PAYMENT_COURSE_ID", 0)),
		PaymentProductID: getEnv("PAYMENT_PRODUCT_ID", ""),

		PaynetAPIURL:       getEnv("PAYNET_API_URL", "https://paynet.md/acquiring"),
		PaynetMerchantCode: getEnv("PAYNET_MERCHANT_CODE", ""),
		PaynetMerchantKey:  getEnv("PAYNET_MERCHANT_KEY", ""),
		PaynetNotifySecret: getEnv("PAYNET_NOTIFY_SECRET", ""),
		PaynetEnv:          getEnv("PAYNET_ENV", "live"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentCourseID == 0 {
		log.Println("Warning: PAYMENT_COURSE_ID not set. Paid orders will not grant course access.")
	}
	if AppConfig.PaynetNotifySecret == "" && AppConfig.PaynetEnv != "test" {
		log.Println("Warning: PAYNET_NOTIFY_SECRET not set. Callback signatures cannot be verified.")
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
