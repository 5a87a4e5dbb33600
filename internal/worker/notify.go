package worker

import (
	"context"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
)

type NotificationHandler func(ctx context.Context, n models.ContactNotification) error

type NotificationConsumer interface {
	ConsumeContactNotifications(ctx context.Context, handler func(ctx context.Context, n models.ContactNotification) error) error
}

// NotifyWorker drains the contact notification queue into handler.
type NotifyWorker struct {
	consumer NotificationConsumer
	handler  NotificationHandler
}

func NewNotifyWorker(consumer NotificationConsumer, handler NotificationHandler) *NotifyWorker {
	return &NotifyWorker{
		consumer: consumer,
		handler:  handler,
	}
}

// * Run blocks until ctx is done
func (w *NotifyWorker) Run(ctx context.Context) error {
	if err := w.consumer.ConsumeContactNotifications(ctx, w.handler); err != nil {
		logger.Error("failed to start contact notifier: %v", err)
		return err
	}

	logger.Info("contact notifier started")
	<-ctx.Done()
	logger.Info("stopping contact notifier")
	return nil
}
