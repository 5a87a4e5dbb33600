package models

import (
	"context"
	"time"
)

// * This interface defines all db operations needed by the contact inbox
type ContactStore interface {
	InsertContactMessage(ctx context.Context, msg *ContactMessage) error
	GetContactMessage(ctx context.Context, id string) (*ContactMessage, error)
	MarkContactMessageNotified(ctx context.Context, id string, at time.Time) error
}

// * Queue operations for contact notifications
type ContactPublisher interface {
	PublishContactNotification(ctx context.Context, n ContactNotification) error
}
