package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting read from the environment.
type Config struct {
	Port    string
	Env     string // "development" or "production"
	MongoURI string
	MongoDB  string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	AdminEmail   string

	FrontendOrigins string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

// Load reads .env (if present) and the environment into a Config.
// Missing Mongo or JWT settings are fatal.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "filmfest"),
		AccessSecret:    os.Getenv("JWT_ACCESS_SECRET"),
		RefreshSecret:   os.Getenv("JWT_REFRESH_SECRET"),
		AccessTTL:       getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:      getDuration("REFRESH_TOKEN_TTL", 14*24*time.Hour),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		MailFrom:        getEnv("MAIL_FROM_EMAIL", "noreply@example.com"),
		MailFromName:    getEnv("MAIL_FROM_NAME", "IFFA"),
		AdminEmail:      os.Getenv("MAIL_ADMIN_EMAIL"),
		FrontendOrigins: getEnv("FRONTEND_ORIGINS", "http://localhost:3000"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("invalid SMTP_PORT, using 587")
		port = 587
	}
	cfg.SMTPPort = port

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}

	return cfg
}

// IsProduction reports whether secure cookie settings should apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
