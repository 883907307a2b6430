package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPPort    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// Payment gateway credentials. GatewayProvider selects the adapter:
	// "razorpay" talks to the hosted gateway, "inprocess" signs orders
	// locally and is meant for development and tests.
	GatewayProvider  string
	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string

	RedisAddr     string
	RedisPassword string

	MediaDir string

	AdminToken string

	// NodeID distinguishes snowflake generators across replicas.
	NodeID int64

	SeedDemo bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:           getenv("APP_SERVICE", "hostel-core"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPPort:          getenv("HTTP_PORT", "8080"),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "hostel"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		GatewayProvider:   strings.ToLower(getenv("GATEWAY_PROVIDER", "inprocess")),
		GatewayBaseURL:    getenv("GATEWAY_BASE_URL", "https://api.razorpay.com"),
		GatewayKeyID:      strings.TrimSpace(getenv("GATEWAY_KEY_ID", "")),
		GatewayKeySecret:  strings.TrimSpace(getenv("GATEWAY_KEY_SECRET", "")),
		RedisAddr:         strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		MediaDir:          getenv("MEDIA_DIR", "./media"),
		AdminToken:        strings.TrimSpace(getenv("ADMIN_TOKEN", "")),
		NodeID:            int64(getenvInt("SNOWFLAKE_NODE_ID", 1)),
		SeedDemo:          getenvBool("SEED_DEMO_CATALOG", false),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
