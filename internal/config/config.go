package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/navigator"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken  string
	GitHubOwner  string
	GitHubAPIURL string
	ServerPort   string
	DBURL        string
	RabbitMQURL  string
	WarmInterval time.Duration
	Sections     []string

	RepoStaleTime  time.Duration
	RepoGCTime     time.Duration
	FacetStaleTime time.Duration
	FacetGCTime    time.Duration
	HTTPTimeout    time.Duration
}

// * ContactEnabled reports whether a database is configured for the contact inbox
func (c *Config) ContactEnabled() bool {
	return c.DBURL != ""
}

// * LoadConfiguration reads the .env file (if any) and the environment and returns a pointer to a Config
func LoadConfiguration() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubOwner:  strings.TrimSpace(os.Getenv("GITHUB_OWNER")),
		GitHubAPIURL: getenv("GITHUB_API_URL", "https://api.github.com"),
		ServerPort:   getenv("SERVER_PORT", ":8081"),
		DBURL:        os.Getenv("DATABASE_URL"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		Sections:     ParseSections(os.Getenv("SECTIONS")),
	}

	if cfg.GitHubOwner == "" {
		return nil, errors.New("GITHUB_OWNER is required")
	}

	if !strings.HasPrefix(cfg.ServerPort, ":") {
		cfg.ServerPort = ":" + cfg.ServerPort
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"WARM_INTERVAL", 5 * time.Minute, &cfg.WarmInterval},
		{"REPO_STALE_TIME", 5 * time.Minute, &cfg.RepoStaleTime},
		{"REPO_GC_TIME", 10 * time.Minute, &cfg.RepoGCTime},
		{"FACET_STALE_TIME", 15 * time.Minute, &cfg.FacetStaleTime},
		{"FACET_GC_TIME", 30 * time.Minute, &cfg.FacetGCTime},
		{"HTTP_TIMEOUT", 10 * time.Second, &cfg.HTTPTimeout},
	}
	for _, d := range durations {
		v, err := parseDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dest = v
	}

	if cfg.GitHubToken == "" {
		logger.Warn("GITHUB_TOKEN not set, GitHub requests are limited to 60 per hour")
	}

	logger.Info("✅ env content loaded successfully 🎉")
	return cfg, nil
}

// * ParseSections splits a comma separated list of section ids, falling back
// * to the default portfolio sections when the list is empty
func ParseSections(raw string) []string {
	var sections []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sections = append(sections, id)
	}

	if len(sections) == 0 {
		return append([]string(nil), navigator.DefaultSections...)
	}
	return sections
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
