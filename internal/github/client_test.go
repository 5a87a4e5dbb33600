package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }

func TestNewClient(t *testing.T) {
	client := NewClient("test-token")

	assert.NotNil(t, client)
	assert.Equal(t, "test-token", client.token)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = NewClient("", WithBaseURL("http://example.test"), WithTimeout(time.Second))
	assert.Equal(t, "http://example.test", client.baseURL)
	assert.Equal(t, time.Second, client.httpClient.Timeout)
}

func TestClient_makeRequest(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		validateReq func(t *testing.T, r *http.Request)
	}{
		{
			name:  "request with token",
			token: "test-token",
			validateReq: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
				assert.Equal(t, http.MethodGet, r.Method)
			},
		},
		{
			name:  "request without token",
			token: "",
			validateReq: func(t *testing.T, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
				assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.validateReq(t, r)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewClient(tt.token, WithBaseURL(server.URL))
			resp, err := client.makeRequest(context.Background(), http.MethodGet, "/test")

			require.NoError(t, err)
			resp.Body.Close()
		})
	}
}

func TestClient_ListUserRepositories(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		sort           SortField
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectedRepos  []Repository
		expectedRef    string
		expectedStatus int
	}{
		{
			name: "successful listing",
			sort: SortByStars,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users/octocat/repos", r.URL.Path)
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				assert.Equal(t, "stars", r.URL.Query().Get("sort"))
				assert.Equal(t, "desc", r.URL.Query().Get("direction"))
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`[{
					"id": 1, "name": "api-gateway", "full_name": "octocat/api-gateway",
					"description": "a proxy", "language": "Go", "topics": ["proxy", "http"],
					"stargazers_count": 12, "forks_count": 3, "fork": false, "private": false,
					"html_url": "https://github.com/octocat/api-gateway",
					"homepage": null, "license": {"name": "MIT License", "spdx_id": "MIT"},
					"created_at": "2023-01-01T00:00:00Z", "updated_at": "2024-06-01T00:00:00Z",
					"watchers": 12
				}]`))
			},
			expectedRepos: []Repository{
				{
					ID:              1,
					Name:            "api-gateway",
					FullName:        "octocat/api-gateway",
					Description:     strPtr("a proxy"),
					Language:        strPtr("Go"),
					Topics:          []string{"proxy", "http"},
					StargazersCount: 12,
					ForksCount:      3,
					HTMLURL:         "https://github.com/octocat/api-gateway",
					License:         &License{Name: "MIT License", SPDXID: "MIT"},
					CreatedAt:       created,
					UpdatedAt:       updated,
				},
			},
		},
		{
			name: "empty listing",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "updated", r.URL.Query().Get("sort"))
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`[]`))
			},
			expectedRepos: []Repository{},
		},
		{
			name: "user not found",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedRef:    errors.RefRemoteFetch,
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedRef:    errors.RefRemoteFetch,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid json response",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`invalid json`))
			},
			expectedRef: errors.RefMalformedResponse,
		},
		{
			name: "one item with wrong types aborts the listing",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`[{"id": 1, "name": "ok"}, {"id": "two", "name": "bad"}]`))
			},
			expectedRef: errors.RefMalformedResponse,
		},
		{
			name: "item without id aborts the listing",
			sort: SortByUpdated,
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`[{"id": 1, "name": "ok"}, {"name": "orphan"}]`))
			},
			expectedRef: errors.RefMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := NewClient("test-token", WithBaseURL(server.URL))
			repos, err := client.ListUserRepositories(context.Background(), "octocat", tt.sort)

			if tt.expectedRef != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedRef), "unexpected error: %v", err)
				assert.Nil(t, repos)

				var appErr *errors.ApplicationError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.expectedStatus, appErr.StatusCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedRepos, repos)
		})
	}
}

func TestClient_ListUserRepositories_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]Repository{})
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	_, err := client.ListUserRepositories(context.Background(), "octocat", SortByUpdated)

	require.Error(t, err)
	assert.True(t, errors.IsRemoteFetch(err))
}

func TestClient_Context_Cancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListUserRepositories(ctx, "octocat", SortByUpdated)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
	assert.True(t, errors.IsRemoteFetch(err))
}

func BenchmarkClient_ListUserRepositories(b *testing.B) {
	repos := make([]Repository, 100)
	for i := range repos {
		repos[i] = Repository{ID: int64(i + 1), Name: "repo", HTMLURL: "https://github.com/octocat/repo"}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(repos)
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.ListUserRepositories(context.Background(), "octocat", SortByUpdated); err != nil {
			b.Fatal(err)
		}
	}
}
