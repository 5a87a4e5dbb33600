package contact

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Service struct {
	store     models.ContactStore
	publisher models.ContactPublisher
	validate  *validator.Validate
	now       func() time.Time
}

// * publisher may be nil, messages are then stored without a notification
func NewService(store models.ContactStore, publisher models.ContactPublisher) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &Service{
		store:     store,
		publisher: publisher,
		validate:  v,
		now:       time.Now,
	}
}

// Submit validates and stores a contact form submission, then queues a
// notification for it. A failed publish is logged; the message stays stored.
func (s *Service) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	req = normalize(req)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	msg := &models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.InsertContactMessage(ctx, msg); err != nil {
		return nil, err
	}

	logger.Info("Stored contact message %s from %s", msg.ID, msg.Email)

	if s.publisher == nil {
		return msg, nil
	}

	notification := models.ContactNotification{
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		CreatedAt: msg.CreatedAt,
	}
	if err := s.publisher.PublishContactNotification(ctx, notification); err != nil {
		logger.Warn("failed to queue notification for contact message %s: %v", msg.ID, err)
	}

	return msg, nil
}

// HandleNotification marks the referenced message as notified. Redeliveries
// of an already notified message and messages that no longer exist are
// skipped so their deliveries are not requeued forever.
func (s *Service) HandleNotification(ctx context.Context, n models.ContactNotification) error {
	msg, err := s.store.GetContactMessage(ctx, n.MessageID)
	if errors.Is(err, errors.RefContactNotFound) {
		logger.Warn("contact message %s not found, dropping notification", n.MessageID)
		return nil
	}
	if err != nil {
		return err
	}
	if msg.NotifiedAt != nil {
		logger.Debug("contact message %s already notified", n.MessageID)
		return nil
	}

	if err := s.store.MarkContactMessageNotified(ctx, n.MessageID, s.now().UTC()); err != nil {
		return err
	}

	logger.Info("📬 New contact message from %s <%s>: %s", n.Name, n.Email, n.Subject)
	return nil
}

func normalize(req models.ContactRequest) models.ContactRequest {
	return models.ContactRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation(err.Error(), nil)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}

	return errors.Validation(fmt.Sprintf("%d field(s) failed validation", len(fields)), fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
