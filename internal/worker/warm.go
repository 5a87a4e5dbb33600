package worker

import (
	"context"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/directory"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

// WarmWorker keeps the directory cache populated for one owner so the first
// visitor after a staleness window does not wait on GitHub.
type WarmWorker struct {
	service  directory.Service
	interval time.Duration
	owner    string
}

func NewWarmWorker(service directory.Service, interval time.Duration, owner string) *WarmWorker {
	return &WarmWorker{
		service:  service,
		interval: interval,
		owner:    owner,
	}
}

func (w *WarmWorker) Run(ctx context.Context) {
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.warm(ctx)

		case <-ctx.Done():
			logger.Info("stopping cache warmer")
			return
		}
	}
}

// * Failures are logged only, the next tick tries again
func (w *WarmWorker) warm(ctx context.Context) {
	repos, err := w.service.FetchRepositories(ctx, w.owner, directory.Filters{})
	if err != nil {
		logger.Error("failed to warm repositories for %s: %v", w.owner, err)
		return
	}

	if _, err := w.service.ListLanguages(ctx, w.owner); err != nil {
		logger.Error("failed to warm languages for %s: %v", w.owner, err)
	}

	if _, err := w.service.ListTopics(ctx, w.owner); err != nil {
		logger.Error("failed to warm topics for %s: %v", w.owner, err)
	}

	logger.Debug("warmed cache for %s (%d repositories)", w.owner, len(repos))
}
