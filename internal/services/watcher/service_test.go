package watcher

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacman-dev/bacman/internal/models"
)

type mockNotifier struct {
	addFunc func(path string) error
	events  chan fsnotify.Event
	errs    chan error
	closed  bool
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{
		events: make(chan fsnotify.Event, 16),
		errs:   make(chan error, 16),
	}
}

func (m *mockNotifier) Add(path string) error {
	if m.addFunc != nil {
		return m.addFunc(path)
	}
	return nil
}

func (m *mockNotifier) Events() <-chan fsnotify.Event { return m.events }
func (m *mockNotifier) Errors() <-chan error          { return m.errs }

func (m *mockNotifier) Close() error {
	m.closed = true
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestWatch_ForwardsEvents(t *testing.T) {
	notifier := newMockNotifier()
	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier.events <- fsnotify.Event{Name: "/data/file.txt", Op: fsnotify.Write}
	notifier.events <- fsnotify.Event{Name: "/data/new.txt", Op: fsnotify.Create}
	notifier.events <- fsnotify.Event{Name: "/data/old.txt", Op: fsnotify.Remove}

	out := make(chan models.WatchEvent, 16)
	done := make(chan struct{})
	var result *models.WatchResult
	var err error
	go func() {
		result, err = svc.Watch(ctx, []string{"/data"}, out)
		close(done)
	}()

	first := <-out
	second := <-out
	third := <-out
	cancel()
	<-done

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Equal(t, 3, result.EventsSeen)

	assert.Equal(t, "/data/file.txt", first.Path)
	assert.Equal(t, "WRITE", first.Op)
	assert.Equal(t, "/data/new.txt", second.Path)
	assert.Equal(t, "CREATE", second.Op)
	assert.Equal(t, "/data/old.txt", third.Path)
	assert.Equal(t, "REMOVE", third.Op)
	assert.False(t, first.Time.IsZero())
}

func TestWatch_SkipsUnwatchablePaths(t *testing.T) {
	notifier := newMockNotifier()
	var added []string
	notifier.addFunc = func(path string) error {
		if path == "/bad" {
			return errors.New("permission denied")
		}
		added = append(added, path)
		return nil
	}

	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.Watch(ctx, []string{"/bad", "/good"}, nil)

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Equal(t, []string{"/good"}, added)
	assert.Equal(t, 0, result.EventsSeen)
	assert.True(t, notifier.closed)
}

func TestWatch_AllPathsUnwatchable(t *testing.T) {
	notifier := newMockNotifier()
	notifier.addFunc = func(path string) error {
		return errors.New("permission denied")
	}

	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	result, err := svc.Watch(context.Background(), []string{"/a", "/b"}, nil)

	require.NoError(t, err)
	require.NotNil(t, result.Error)
	assert.Contains(t, result.Error.Error(), "none of the 2 configured paths")
	assert.True(t, notifier.closed)
}

func TestWatch_NotifierCreationFails(t *testing.T) {
	svc := NewWithNotifier(testLogger(), func() (Notifier, error) {
		return nil, errors.New("inotify limit reached")
	})

	result, err := svc.Watch(context.Background(), []string{"/data"}, nil)

	require.NoError(t, err)
	require.NotNil(t, result.Error)
	assert.Contains(t, result.Error.Error(), "inotify limit reached")
}

func TestWatch_CancelStopsWatch(t *testing.T) {
	notifier := newMockNotifier()
	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel context after a short delay
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result, err := svc.Watch(ctx, []string{"/data"}, nil)

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Equal(t, 0, result.EventsSeen)
	assert.Greater(t, result.Duration, time.Duration(0))
	assert.True(t, notifier.closed)
}

func TestWatch_CountsPendingEventsOnCancel(t *testing.T) {
	notifier := newMockNotifier()
	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	notifier.events <- fsnotify.Event{Name: "/data/a", Op: fsnotify.Write}
	notifier.events <- fsnotify.Event{Name: "/data/b", Op: fsnotify.Write}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := svc.Watch(ctx, []string{"/data"}, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, result.EventsSeen)
}

func TestWatch_ClosedEventStreamEndsWatch(t *testing.T) {
	notifier := newMockNotifier()
	close(notifier.events)

	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	result, err := svc.Watch(context.Background(), []string{"/data"}, nil)

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Equal(t, 0, result.EventsSeen)
}

func TestWatch_WatcherErrorsDoNotStopWatch(t *testing.T) {
	notifier := newMockNotifier()
	svc := NewWithNotifier(testLogger(), func() (Notifier, error) { return notifier, nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier.errs <- errors.New("event overflow")
	notifier.events <- fsnotify.Event{Name: "/data/file.txt", Op: fsnotify.Write}

	out := make(chan models.WatchEvent, 16)
	done := make(chan struct{})
	var result *models.WatchResult
	var err error
	go func() {
		result, err = svc.Watch(ctx, []string{"/data"}, out)
		close(done)
	}()

	ev := <-out
	cancel()
	<-done

	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.Equal(t, 1, result.EventsSeen)
	assert.Equal(t, "/data/file.txt", ev.Path)
}
