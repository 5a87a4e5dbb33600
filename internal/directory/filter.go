package directory

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
)

type SortKey string

const (
	SortUpdated SortKey = "updated"
	SortStars   SortKey = "stars"
	// * SortName is ascending by name folded to lower case, ties broken by
	// * byte order of the raw name ("Alpha" < "alpha2" < "beta" < "Zed")
	SortName    SortKey = "name"
	SortCreated SortKey = "created"
)

// Filters narrows and orders an owner's repositories. The zero value is
// valid: sort by last update, forks excluded, no other restriction.
type Filters struct {
	SearchQuery string   `json:"search_query,omitempty"`
	Languages   []string `json:"languages,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	SortBy      SortKey  `json:"sort_by,omitempty"`
	// * nil means true
	ExcludeForks *bool `json:"exclude_forks,omitempty"`
	MinStars     int   `json:"min_stars,omitempty"`
}

func Bool(b bool) *bool { return &b }

func (f Filters) Validate() error {
	if f.MinStars < 0 {
		return errors.InvalidFilter(fmt.Sprintf("min_stars must not be negative, got %d", f.MinStars))
	}
	switch f.SortBy {
	case "", SortUpdated, SortStars, SortName, SortCreated:
	default:
		return errors.InvalidFilter(fmt.Sprintf("unknown sort key %q, expected one of updated, stars, name, created", f.SortBy))
	}
	return nil
}

// Normalize applies defaults and puts allow-sets in canonical form, so two
// structurally equal filter sets normalize identically.
func (f Filters) Normalize() Filters {
	n := Filters{
		SearchQuery:  strings.TrimSpace(f.SearchQuery),
		Languages:    canonicalSet(f.Languages),
		Topics:       canonicalSet(f.Topics),
		SortBy:       f.SortBy,
		ExcludeForks: Bool(f.excludeForks()),
		MinStars:     f.MinStars,
	}
	if n.SortBy == "" {
		n.SortBy = SortUpdated
	}
	return n
}

// Key serializes the normalized filters for use in cache keys.
func (f Filters) Key() string {
	b, _ := json.Marshal(f.Normalize())
	return string(b)
}

func (f Filters) excludeForks() bool {
	return f.ExcludeForks == nil || *f.ExcludeForks
}

// ServerSort maps a sort key onto the listing endpoint's sort field.
func (k SortKey) ServerSort() github.SortField {
	switch k {
	case SortStars:
		return github.SortByStars
	case SortCreated:
		return github.SortByCreated
	case SortName:
		return github.SortByFullName
	default:
		return github.SortByUpdated
	}
}

// Apply filters and orders repos without touching the input slice. It is a
// pure function of its arguments.
func Apply(repos []github.Repository, f Filters) []github.Repository {
	f = f.Normalize()
	query := strings.ToLower(f.SearchQuery)

	seen := make(map[int64]struct{}, len(repos))
	out := make([]github.Repository, 0, len(repos))

	for _, repo := range repos {
		if _, dup := seen[repo.ID]; dup {
			continue
		}
		seen[repo.ID] = struct{}{}

		if repo.Private {
			continue
		}
		if *f.ExcludeForks && repo.Fork {
			continue
		}
		if repo.StargazersCount < f.MinStars {
			continue
		}
		if query != "" && !matchesQuery(repo, query) {
			continue
		}
		if len(f.Languages) > 0 && (repo.Language == nil || !slices.Contains(f.Languages, strings.ToLower(*repo.Language))) {
			continue
		}
		if len(f.Topics) > 0 && !hasAnyTopic(repo, f.Topics) {
			continue
		}

		out = append(out, cloneRepository(repo))
	}

	sortRepositories(out, f.SortBy)
	return out
}

func matchesQuery(repo github.Repository, query string) bool {
	if strings.Contains(strings.ToLower(repo.Name), query) {
		return true
	}
	return repo.Description != nil && strings.Contains(strings.ToLower(*repo.Description), query)
}

func hasAnyTopic(repo github.Repository, allowed []string) bool {
	for _, topic := range repo.Topics {
		if slices.Contains(allowed, strings.ToLower(topic)) {
			return true
		}
	}
	return false
}

// * Stable so equal keys keep the server's order
func sortRepositories(repos []github.Repository, key SortKey) {
	var less func(a, b github.Repository) bool

	switch key {
	case SortName:
		less = func(a, b github.Repository) bool {
			la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if la != lb {
				return la < lb
			}
			return a.Name < b.Name
		}
	case SortStars:
		less = func(a, b github.Repository) bool { return a.StargazersCount > b.StargazersCount }
	case SortCreated:
		less = func(a, b github.Repository) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b github.Repository) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	}

	sort.SliceStable(repos, func(i, j int) bool { return less(repos[i], repos[j]) })
}

func canonicalSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	set := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set = append(set, v)
		}
	}
	slices.Sort(set)
	set = slices.Compact(set)
	if len(set) == 0 {
		return nil
	}
	return set
}

func cloneRepository(r github.Repository) github.Repository {
	r.Topics = slices.Clone(r.Topics)
	return r
}

// Languages returns the distinct languages of the public repositories, sorted.
func Languages(repos []github.Repository) []string {
	set := make(map[string]struct{})
	for _, repo := range repos {
		if repo.Private || repo.Language == nil || *repo.Language == "" {
			continue
		}
		set[*repo.Language] = struct{}{}
	}
	return sortedKeys(set)
}

// Topics returns the union of the public repositories' topics, sorted.
func Topics(repos []github.Repository) []string {
	set := make(map[string]struct{})
	for _, repo := range repos {
		if repo.Private {
			continue
		}
		for _, topic := range repo.Topics {
			if topic != "" {
				set[topic] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
