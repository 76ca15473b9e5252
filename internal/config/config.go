package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	MinIO    MinIOConfig
	Artifact ArtifactConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	ExpireHours     int
	RefreshExpHours int
}

type MinIOConfig struct {
	Endpoint string
	User     string
	Password string
	Bucket   string
	UseSSL   bool
}

// ArtifactConfig holds everything the certificate/badge renderers need.
// Injected into the renderers explicitly so tests can substitute
// deterministic values.
type ArtifactConfig struct {
	FrontendURL  string // base for badge verification links embedded in QR codes
	ImageBaseURL string // base for relative /uploads profile image paths
	ImageToken   string // optional bearer token for the authenticated image fetch retry
	OrgName      string
	OrgTagline   string
	FontDirs     []string // extra directories searched for TTF fonts
}

func Load() *Config {
	// Load .env if present (development); production uses env variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	jwtExpire, _ := strconv.Atoi(getEnv("JWT_EXPIRE_HOURS", "24"))
	jwtRefreshExpire, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRE_HOURS", "168"))
	minioSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	var fontDirs []string
	if raw := getEnv("FONT_DIRS", ""); raw != "" {
		for _, dir := range strings.Split(raw, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				fontDirs = append(fontDirs, dir)
			}
		}
	}

	return &Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "ledger_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "volunteer_ledger"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-this-secret"),
			ExpireHours:     jwtExpire,
			RefreshExpHours: jwtRefreshExpire,
		},
		MinIO: MinIOConfig{
			Endpoint: getEnv("MINIO_ENDPOINT", "localhost:9000"),
			User:     getEnv("MINIO_USER", "minioadmin"),
			Password: getEnv("MINIO_PASSWORD", "minioadmin123"),
			Bucket:   getEnv("MINIO_BUCKET", "volunteer-artifacts"),
			UseSSL:   minioSSL,
		},
		Artifact: ArtifactConfig{
			FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
			ImageBaseURL: strings.TrimRight(getEnv("IMAGE_BASE_URL", "http://localhost:8080"), "/"),
			ImageToken:   getEnv("IMAGE_FETCH_TOKEN", ""),
			OrgName:      getEnv("ORG_NAME", "Plogging Ethiopia"),
			OrgTagline:   getEnv("ORG_TAGLINE", "Keep Moving, Keep Cleaning"),
			FontDirs:     fontDirs,
		},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
