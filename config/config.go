package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBType      string
	MongoURL    string
	PostgresURL string

	JWTSecret  string
	Production bool

	CORSOrigin string

	R2Bucket    string
	R2AccountID string
	R2PublicURL string
	R2AccessKey string
	R2SecretKey string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		DBType:      os.Getenv("DB_TYPE"),
		MongoURL:    os.Getenv("MONGO_URL"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Production:  os.Getenv("APP_ENV") == "production",
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
		R2Bucket:    os.Getenv("R2_BUCKET"),
		R2AccountID: os.Getenv("R2_ACCOUNT_ID"),
		R2PublicURL: os.Getenv("R2_PUBLIC_URL"),
		R2AccessKey: os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBType == "" {
		cfg.DBType = "mongo"
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}
	return cfg
}
