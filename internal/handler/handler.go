package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/directory"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/gorilla/mux"
)

// * Invalidator drops cached entries for an owner, the cached directory implements it
type Invalidator interface {
	Invalidate(owner string) int
}

type DirectoryHandler struct {
	service     directory.Service
	invalidator Invalidator
}

// * invalidator may be nil when the service is not cached
func NewDirectoryHandler(service directory.Service, invalidator Invalidator) *DirectoryHandler {
	return &DirectoryHandler{
		service:     service,
		invalidator: invalidator,
	}
}

func (h *DirectoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users/{owner}/repositories", h.listRepositories).Methods("GET")
	r.HandleFunc("/users/{owner}/languages", h.listLanguages).Methods("GET")
	r.HandleFunc("/users/{owner}/topics", h.listTopics).Methods("GET")
	if h.invalidator != nil {
		r.HandleFunc("/users/{owner}/cache", h.invalidateCache).Methods("DELETE")
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}, message ...string) {
	writeJSON(w, http.StatusOK, data, message...)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// listRepositories godoc
// @Summary List Repositories
// @Description Fetch an owner's public repositories, filtered and sorted
// @Tags Repositories
// @Produce json
// @Param owner path string true "GitHub user"
// @Param q query string false "Case-insensitive search over name and description"
// @Param language query []string false "Language allow-list (repeat or comma separate)"
// @Param topic query []string false "Topic allow-list (repeat or comma separate)"
// @Param sort query string false "Sort key" Enums(updated, stars, name, created) default(updated)
// @Param exclude_forks query bool false "Exclude forks" default(true)
// @Param min_stars query int false "Minimum star count" default(0)
// @Success 200 {object} RepositoryListResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /users/{owner}/repositories [get]
func (h *DirectoryHandler) listRepositories(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]

	filters, err := parseFilters(r)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	repos, err := h.service.FetchRepositories(r.Context(), owner, filters)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}
	if repos == nil {
		repos = []github.Repository{}
	}

	logger.Info("Fetched %d repositories for %s", len(repos), owner)
	writeSuccess(w, RepositoryListResponse{
		Owner:        owner,
		Count:        len(repos),
		Filters:      filters.Normalize(),
		Repositories: repos,
	}, "Successfully fetched repositories")
}

// listLanguages godoc
// @Summary List Languages
// @Description Distinct primary languages across an owner's public repositories
// @Tags Facets
// @Produce json
// @Param owner path string true "GitHub user"
// @Success 200 {object} FacetResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /users/{owner}/languages [get]
func (h *DirectoryHandler) listLanguages(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]

	languages, err := h.service.ListLanguages(r.Context(), owner)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, FacetResponse{Owner: owner, Values: nonNil(languages)}, "Successfully fetched languages")
}

// listTopics godoc
// @Summary List Topics
// @Description Union of topics across an owner's public repositories
// @Tags Facets
// @Produce json
// @Param owner path string true "GitHub user"
// @Success 200 {object} FacetResponse
// @Failure 502 {object} errors.HTTPErrorResponse
// @Router /users/{owner}/topics [get]
func (h *DirectoryHandler) listTopics(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]

	topics, err := h.service.ListTopics(r.Context(), owner)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, FacetResponse{Owner: owner, Values: nonNil(topics)}, "Successfully fetched topics")
}

// invalidateCache godoc
// @Summary Invalidate Cache
// @Description Drops cached listings and facets for an owner
// @Tags Repositories
// @Produce json
// @Param owner path string true "GitHub user"
// @Success 200 {object} InvalidateResponse
// @Router /users/{owner}/cache [delete]
func (h *DirectoryHandler) invalidateCache(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]
	evicted := h.invalidator.Invalidate(owner)

	logger.Info("Invalidated %d cache entries for %s", evicted, owner)
	writeSuccess(w, InvalidateResponse{Owner: owner, Evicted: evicted}, "Cache invalidated")
}

func parseFilters(r *http.Request) (directory.Filters, error) {
	q := r.URL.Query()

	filters := directory.Filters{
		SearchQuery: q.Get("q"),
		Languages:   splitList(q["language"]),
		Topics:      splitList(q["topic"]),
		SortBy:      directory.SortKey(strings.ToLower(strings.TrimSpace(q.Get("sort")))),
	}

	if raw := q.Get("exclude_forks"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errors.InvalidFilter("exclude_forks must be a boolean, got " + strconv.Quote(raw))
		}
		filters.ExcludeForks = directory.Bool(v)
	}

	if raw := q.Get("min_stars"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filters, errors.InvalidFilter("min_stars must be an integer, got " + strconv.Quote(raw))
		}
		filters.MinStars = v
	}

	return filters, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
