package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestProcessDelivery(t *testing.T) {
	notification := models.ContactNotification{
		MessageID: "abc",
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Hello there",
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	valid, err := json.Marshal(notification)
	require.NoError(t, err)

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handlerErr  error
		wantAck     bool
		wantNack    bool
		wantRequeue bool
		wantHandled bool
	}{
		{
			name:        "handled delivery is acked",
			body:        valid,
			wantAck:     true,
			wantHandled: true,
		},
		{
			name:        "first handler failure is requeued",
			body:        valid,
			handlerErr:  errors.New("db down"),
			wantNack:    true,
			wantRequeue: true,
			wantHandled: true,
		},
		{
			name:        "failed redelivery is dropped",
			body:        valid,
			redelivered: true,
			handlerErr:  errors.New("db down"),
			wantNack:    true,
			wantHandled: true,
		},
		{
			name:     "undecodable delivery is dropped",
			body:     []byte(`{not json`),
			wantNack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			handled := false

			processDelivery(context.Background(), tt.body, tt.redelivered, ack, func(ctx context.Context, n models.ContactNotification) error {
				handled = true
				assert.Equal(t, notification, n)
				return tt.handlerErr
			})

			assert.Equal(t, tt.wantHandled, handled)
			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, tt.wantNack, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeued)
		})
	}
}
