package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 10 * time.Second
)

type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(token string, opts ...Option) *Client {
	rl := NewRateLimiter()

	c := &Client{
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: rl.Middleware(http.DefaultTransport),
		},
		token:   token,
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// ListUserRepositories issues exactly one request for the first page of the
// owner's repositories, ordered server-side by sort, descending.
func (c *Client) ListUserRepositories(ctx context.Context, owner string, sort SortField) ([]Repository, error) {
	params := make(url.Values)
	params.Set("per_page", strconv.Itoa(MaxPerPage))
	params.Set("sort", string(sort))
	params.Set("direction", "desc")

	path := fmt.Sprintf("/users/%s/repos?%s", url.PathEscape(owner), params.Encode())

	resp, err := c.makeRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, errors.RemoteFetch(0,
			fmt.Sprintf("Could not retrieve repositories of %s from GitHub API", owner),
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.RemoteFetch(resp.StatusCode,
			fmt.Sprintf("GitHub API returned status %d when listing repositories of %s", resp.StatusCode, owner),
			nil,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.RemoteFetch(0,
			"Could not read the response body from GitHub API",
			err,
		)
	}

	repos, err := decodeRepositories(body)
	if err != nil {
		return nil, err
	}

	logger.Debug("fetched %d repositories of %s from GitHub", len(repos), owner)
	return repos, nil
}

// * decodeRepositories fails the whole page if any single item is unusable
func decodeRepositories(body []byte) ([]Repository, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, errors.MalformedResponse(
			"Expected a JSON array of repositories from GitHub API",
			err,
		)
	}

	repos := make([]Repository, 0, len(items))
	for i, item := range items {
		var repo Repository
		if err := json.Unmarshal(item, &repo); err != nil {
			return nil, errors.MalformedResponse(
				fmt.Sprintf("Repository at index %d could not be parsed", i),
				err,
			)
		}
		if err := repo.validate(); err != nil {
			return nil, errors.MalformedResponse(
				fmt.Sprintf("Repository at index %d is invalid: %v", i, err),
				nil,
			)
		}
		repos = append(repos, repo)
	}

	return repos, nil
}

func (r Repository) validate() error {
	switch {
	case r.ID <= 0:
		return fmt.Errorf("missing id")
	case r.Name == "":
		return fmt.Errorf("missing name")
	case r.StargazersCount < 0 || r.ForksCount < 0:
		return fmt.Errorf("negative counters")
	}
	return nil
}
