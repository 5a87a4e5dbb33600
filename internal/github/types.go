package github

import "time"

type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	HTMLURL         string    `json:"html_url"`
	CloneURL        string    `json:"clone_url"`
	Homepage        *string   `json:"homepage"`
	Language        *string   `json:"language"`
	Topics          []string  `json:"topics"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Size            int       `json:"size"`
	Fork            bool      `json:"fork"`
	Private         bool      `json:"private"`
	DefaultBranch   string    `json:"default_branch"`
	License         *License  `json:"license"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type License struct {
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
}

// * SortField is the server-side ordering requested from the listing endpoint
type SortField string

const (
	SortByUpdated  SortField = "updated"
	SortByCreated  SortField = "created"
	SortByFullName SortField = "full_name"
	SortByStars    SortField = "stars"
)

const MaxPerPage = 100
