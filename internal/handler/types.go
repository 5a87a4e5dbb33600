package handler

import (
	"github.com/KOFI-GYIMAH/portfolio-api/internal/directory"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/navigator"
)

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type RepositoryListResponse struct {
	Owner        string              `json:"owner"`
	Count        int                 `json:"count"`
	Filters      directory.Filters   `json:"filters"`
	Repositories []github.Repository `json:"repositories"`
}

type FacetResponse struct {
	Owner  string   `json:"owner"`
	Values []string `json:"values"`
}

type InvalidateResponse struct {
	Owner   string `json:"owner"`
	Evicted int    `json:"evicted"`
}

type SectionsResponse struct {
	Sections  []string                 `json:"sections"`
	NavOffset float64                  `json:"nav_offset"`
	Observe   navigator.ObserveOptions `json:"observe"`
}
