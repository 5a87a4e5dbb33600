package config

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GITHUB_TOKEN", "GITHUB_OWNER", "GITHUB_API_URL", "SERVER_PORT",
	"DATABASE_URL", "RABBITMQ_URL", "WARM_INTERVAL", "SECTIONS",
	"REPO_STALE_TIME", "REPO_GC_TIME", "FACET_STALE_TIME", "FACET_GC_TIME",
	"HTTP_TIMEOUT",
}

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_OWNER", "octocat")

	cfg, err := LoadConfiguration()
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.GitHubOwner)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, ":8081", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.WarmInterval)
	assert.Equal(t, 5*time.Minute, cfg.RepoStaleTime)
	assert.Equal(t, 10*time.Minute, cfg.RepoGCTime)
	assert.Equal(t, 15*time.Minute, cfg.FacetStaleTime)
	assert.Equal(t, 30*time.Minute, cfg.FacetGCTime)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"hero", "about", "skills", "experience", "projects", "contact"}, cfg.Sections)
	assert.False(t, cfg.ContactEnabled())
}

func TestLoadConfiguration_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_OWNER", "octocat")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/portfolio")
	t.Setenv("REPO_STALE_TIME", "1m")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("SECTIONS", "hero, work ,hero,contact")

	cfg, err := LoadConfiguration()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.RepoStaleTime)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"hero", "work", "contact"}, cfg.Sections)
	assert.True(t, cfg.ContactEnabled())
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing owner", map[string]string{}},
		{"bad duration", map[string]string{"GITHUB_OWNER": "octocat", "WARM_INTERVAL": "soon"}},
		{"non-positive duration", map[string]string{"GITHUB_OWNER": "octocat", "REPO_GC_TIME": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfiguration()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestParseSections_ReturnsCopyOfDefaults(t *testing.T) {
	a := ParseSections("")
	a[0] = "changed"
	assert.Equal(t, "hero", ParseSections(" , ")[0])
}
