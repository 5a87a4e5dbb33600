package worker

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/portfolio-api/internal/directory"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/github"
	"github.com/KOFI-GYIMAH/portfolio-api/internal/models"
	"github.com/KOFI-GYIMAH/portfolio-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FetchRepositories(ctx context.Context, owner string, filters directory.Filters) ([]github.Repository, error) {
	args := m.Called(ctx, owner, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Repository), args.Error(1)
}

func (m *MockDirectory) ListLanguages(ctx context.Context, owner string) ([]string, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectory) ListTopics(ctx context.Context, owner string) ([]string, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestWarmWorker_WarmsOnStartAndStops(t *testing.T) {
	svc := new(MockDirectory)
	svc.On("FetchRepositories", mock.Anything, "octo", directory.Filters{}).Return([]github.Repository{{ID: 1, Name: "a"}}, nil)
	svc.On("ListLanguages", mock.Anything, "octo").Return([]string{"Go"}, nil)
	warmed := make(chan struct{})
	svc.On("ListTopics", mock.Anything, "octo").Return([]string{"cli"}, nil).Run(func(mock.Arguments) {
		close(warmed)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewWarmWorker(svc, time.Hour, "octo").Run(ctx)
		close(done)
	}()

	select {
	case <-warmed:
	case <-time.After(time.Second):
		t.Fatal("cache was not warmed on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warm worker did not stop")
	}

	svc.AssertExpectations(t)
}

func TestWarmWorker_SkipsFacetsWhenListFails(t *testing.T) {
	svc := new(MockDirectory)
	svc.On("FetchRepositories", mock.Anything, "octo", directory.Filters{}).Return(nil, stderrors.New("boom"))

	NewWarmWorker(svc, time.Hour, "octo").warm(context.Background())

	svc.AssertNotCalled(t, "ListLanguages", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "ListTopics", mock.Anything, mock.Anything)
}

type fakeConsumer struct {
	err      error
	handlers chan func(ctx context.Context, n models.ContactNotification) error
}

func (f *fakeConsumer) ConsumeContactNotifications(ctx context.Context, handler func(ctx context.Context, n models.ContactNotification) error) error {
	if f.err != nil {
		return f.err
	}
	f.handlers <- handler
	return nil
}

func TestNotifyWorker(t *testing.T) {
	t.Run("hands deliveries to the handler until cancelled", func(t *testing.T) {
		var handled atomic.Int32
		consumer := &fakeConsumer{handlers: make(chan func(context.Context, models.ContactNotification) error, 1)}
		w := NewNotifyWorker(consumer, func(ctx context.Context, n models.ContactNotification) error {
			handled.Add(1)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- w.Run(ctx) }()

		handler := <-consumer.handlers
		require.NoError(t, handler(ctx, models.ContactNotification{MessageID: "x"}))
		assert.Equal(t, int32(1), handled.Load())

		cancel()
		assert.NoError(t, <-errCh)
	})

	t.Run("consume failure is returned", func(t *testing.T) {
		consumer := &fakeConsumer{err: stderrors.New("channel closed")}
		w := NewNotifyWorker(consumer, func(context.Context, models.ContactNotification) error { return nil })

		assert.Error(t, w.Run(context.Background()))
	})
}
