package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dosada05/music-league-system/models"
	"github.com/Dosada05/music-league-system/utils"
)

// Config holds every configuration parameter of the application.
type Config struct {
	ServerPort      int
	AllowedOrigins  []string
	AdminJWTSecret  string
	ManifestPath    string
	LoadTimeout     time.Duration
	RefreshInterval time.Duration
	PrivacyMode     utils.PrivacyMode

	// Archive source selection. "http" serves archives from a static
	// endpoint, "r2" from a Cloudflare R2 bucket.
	ArchiveSource  string
	ArchiveBaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2KeyPrefix       string
}

// Load reads configuration from environment variables, optionally seeded from
// a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnvOrDefault("SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	adminSecret := os.Getenv("ADMIN_JWT_SECRET")
	if adminSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET environment variable is not set")
	}

	manifestPath := os.Getenv("ARCHIVE_MANIFEST")
	if manifestPath == "" {
		return nil, fmt.Errorf("ARCHIVE_MANIFEST environment variable is not set")
	}

	timeoutMsStr := getEnvOrDefault("LOAD_TIMEOUT_MS", "5000")
	timeoutMs, err := strconv.Atoi(timeoutMsStr)
	if err != nil || timeoutMs <= 0 {
		return nil, fmt.Errorf("LOAD_TIMEOUT_MS must be a positive integer, got %q", timeoutMsStr)
	}

	refreshStr := getEnvOrDefault("REFRESH_INTERVAL", "15m")
	refreshInterval, err := time.ParseDuration(refreshStr)
	if err != nil || refreshInterval <= 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must be a positive duration, got %q", refreshStr)
	}

	privacyMode := utils.PrivacyMode(getEnvOrDefault("PRIVACY_MODE", string(utils.PrivacyFull)))
	if !utils.ValidPrivacyMode(privacyMode) {
		return nil, fmt.Errorf("PRIVACY_MODE must be one of full, initials, hidden; got %q", privacyMode)
	}

	cfg := &Config{
		ServerPort:      port,
		AllowedOrigins:  splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		AdminJWTSecret:  adminSecret,
		ManifestPath:    manifestPath,
		LoadTimeout:     time.Duration(timeoutMs) * time.Millisecond,
		RefreshInterval: refreshInterval,
		PrivacyMode:     privacyMode,
		ArchiveSource:   getEnvOrDefault("ARCHIVE_SOURCE", "http"),

		ArchiveBaseURL:    os.Getenv("ARCHIVE_BASE_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2KeyPrefix:       os.Getenv("R2_KEY_PREFIX"),
	}

	switch cfg.ArchiveSource {
	case "http":
		if cfg.ArchiveBaseURL == "" {
			return nil, fmt.Errorf("ARCHIVE_BASE_URL environment variable is not set")
		}
	case "r2":
		if cfg.R2AccountID == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required when ARCHIVE_SOURCE=r2")
		}
	default:
		return nil, fmt.Errorf("ARCHIVE_SOURCE must be \"http\" or \"r2\", got %q", cfg.ArchiveSource)
	}

	return cfg, nil
}

// LoadManifest reads the static archive manifest. The manifest is injected
// into the catalog service at wiring time; nothing inside the core ever looks
// it up from ambient state.
func LoadManifest(path string) (models.Manifest, error) {
	var manifest models.Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return manifest, fmt.Errorf("failed to read archive manifest %q: %w", path, err)
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return manifest, fmt.Errorf("failed to parse archive manifest %q: %w", path, err)
	}

	if len(manifest.Categories) == 0 {
		return manifest, fmt.Errorf("archive manifest %q lists no categories", path)
	}
	seenSlugs := make(map[string]string)
	for i, category := range manifest.Categories {
		if category.Name == "" {
			return manifest, fmt.Errorf("archive manifest %q: category %d has no name", path, i)
		}
		if category.Slug == "" {
			manifest.Categories[i].Slug = utils.Slugify(category.Name)
		}
		for _, file := range category.Archives {
			if file.FileName == "" || file.LeagueTitle == "" {
				return manifest, fmt.Errorf("archive manifest %q: category %q has an archive without file name or league title", path, category.Name)
			}
			// League slugs are the lookup keys; two titles collapsing to the
			// same slug would silently shadow each other in the catalog.
			slug := utils.Slugify(file.LeagueTitle)
			if prev, ok := seenSlugs[slug]; ok {
				return manifest, fmt.Errorf("archive manifest %q: league titles %q and %q produce the same slug %q", path, prev, file.LeagueTitle, slug)
			}
			seenSlugs[slug] = file.LeagueTitle
		}
	}

	return manifest, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
