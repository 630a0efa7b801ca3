package config

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bikeshop/internal/storage"
	"bikeshop/internal/storage/gormstore"
	"bikeshop/internal/storage/jsonstore"
)

type Config struct {
	STORE_BACKEND string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	SQLITE_PATH   string
	DATA_DIR      string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	LOG_LEVEL     string
	HTTP_ADDR     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		STORE_BACKEND: getenv("STORE_BACKEND", "sqlite"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		SQLITE_PATH:   getenv("SQLITE_PATH", "bikeshop.db"),
		DATA_DIR:      getenv("DATA_DIR", "data"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:     getenv("LOG_LEVEL", "info"),
		HTTP_ADDR:     getenv("HTTP_ADDR", ":8080"),
	}

	return config, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitStore opens the persistent backend named by STORE_BACKEND. The
// repository API is identical across backends; the choice is made here
// and nowhere else.
func InitStore(cfg *Config) (storage.Store, error) {
	switch cfg.STORE_BACKEND {
	case "postgres":
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
		)
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return gormstore.New(db)
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(cfg.SQLITE_PATH), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLITE_PATH, err)
		}
		// single interactive writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return gormstore.New(db)
	case "json":
		return jsonstore.Open(cfg.DATA_DIR)
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.STORE_BACKEND)
}
