package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment. It is
// built once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	MongoURI     string
	DBName       string
	Port         string
	JWTSecret    string
	TokenTTL     time.Duration
	AllowOrigins []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := &Config{
		MongoURI:  getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DBName:    getEnv("MONGODB_DB", "miniblog"),
		Port:      getEnv("PORT", "4000"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  168 * time.Hour,
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Printf("Invalid TOKEN_TTL %q, keeping default: %v", ttl, err)
		} else {
			cfg.TokenTTL = d
		}
	}

	origins := getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
