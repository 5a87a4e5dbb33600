package directory

import (
	"context"
	"strings"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

// RepositorySource lists an owner's repositories in a single remote call.
type RepositorySource interface {
	ListUserRepositories(ctx context.Context, owner string, sort github.SortField) ([]github.Repository, error)
}

// Service is what the HTTP layer and the cache warmer consume.
type Service interface {
	FetchRepositories(ctx context.Context, owner string, filters Filters) ([]github.Repository, error)
	ListLanguages(ctx context.Context, owner string) ([]string, error)
	ListTopics(ctx context.Context, owner string) ([]string, error)
}

// Directory issues one remote call per operation. See Cached for the
// caching and retrying variant.
type Directory struct {
	source RepositorySource
}

func New(source RepositorySource) *Directory {
	return &Directory{source: source}
}

func (d *Directory) FetchRepositories(ctx context.Context, owner string, filters Filters) ([]github.Repository, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	raw, err := d.source.ListUserRepositories(ctx, owner, filters.Normalize().SortBy.ServerSort())
	if err != nil {
		return nil, err
	}

	repos := Apply(raw, filters)
	logger.Debug("%d of %d repositories of %s matched filters", len(repos), len(raw), owner)
	return repos, nil
}

func (d *Directory) ListLanguages(ctx context.Context, owner string) ([]string, error) {
	raw, err := d.fetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Languages(raw), nil
}

func (d *Directory) ListTopics(ctx context.Context, owner string) ([]string, error) {
	raw, err := d.fetchAll(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Topics(raw), nil
}

func (d *Directory) fetchAll(ctx context.Context, owner string) ([]github.Repository, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	return d.source.ListUserRepositories(ctx, owner, github.SortByUpdated)
}

func validateOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return errors.InvalidFilter("owner must not be empty")
	}
	return nil
}
