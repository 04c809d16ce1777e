// Package watcher provides filesystem watching for resolved backup paths.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/bacman-dev/bacman/internal/models"
)

// Service defines the interface for watching backup paths.
type Service interface {
	Watch(ctx context.Context, paths []string, events chan<- models.WatchEvent) (*models.WatchResult, error)
}

// Notifier wraps the fsnotify watcher for mocking.
type Notifier interface {
	Add(path string) error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Close() error
}

// DefaultNotifier is the default implementation using fsnotify.
type DefaultNotifier struct {
	watcher *fsnotify.Watcher
}

// NewDefaultNotifier creates a notifier backed by a real fsnotify watcher.
func NewDefaultNotifier() (*DefaultNotifier, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	return &DefaultNotifier{watcher: w}, nil
}

// Add starts watching the given path.
func (n *DefaultNotifier) Add(path string) error {
	return n.watcher.Add(path)
}

// Events returns the stream of filesystem events.
func (n *DefaultNotifier) Events() <-chan fsnotify.Event {
	return n.watcher.Events
}

// Errors returns the stream of watcher errors.
func (n *DefaultNotifier) Errors() <-chan error {
	return n.watcher.Errors
}

// Close stops the underlying watcher.
func (n *DefaultNotifier) Close() error {
	return n.watcher.Close()
}

// Impl implements the watcher Service interface.
type Impl struct {
	newNotifier func() (Notifier, error)
	logger      zerolog.Logger
}

// New creates a new watcher service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		newNotifier: func() (Notifier, error) { return NewDefaultNotifier() },
		logger:      logger,
	}
}

// NewWithNotifier creates a new watcher service with a custom notifier
// factory (for testing).
func NewWithNotifier(logger zerolog.Logger, newNotifier func() (Notifier, error)) *Impl {
	return &Impl{
		newNotifier: newNotifier,
		logger:      logger,
	}
}

// Watch observes the given paths until ctx is cancelled, forwarding each
// filesystem event to the events channel when one is provided. Paths that
// cannot be watched are skipped with a warning; watching proceeds with the
// rest. Cancellation is the normal way to stop a watch; the returned
// result carries no error for it.
func (s *Impl) Watch(ctx context.Context, paths []string, events chan<- models.WatchEvent) (*models.WatchResult, error) {
	result := &models.WatchResult{}
	start := time.Now()

	notifier, err := s.newNotifier()
	if err != nil {
		result.Error = err
		return result, nil //nolint:nilerr // error is stored in result struct
	}
	defer func() { _ = notifier.Close() }()

	watched := 0
	for _, path := range paths {
		if err := notifier.Add(path); err != nil {
			s.logger.Warn().Str("path", path).Err(err).Msg("cannot watch path, skipping")
			continue
		}
		s.logger.Debug().Str("path", path).Msg("watching path")
		watched++
	}

	if watched == 0 {
		result.Duration = time.Since(start)
		result.Error = fmt.Errorf("none of the %d configured paths could be watched", len(paths))
		return result, nil
	}

	s.logger.Info().Int("paths", watched).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			result.EventsSeen += drainEvents(notifier.Events())
			result.Duration = time.Since(start)
			s.logger.Info().
				Int("events", result.EventsSeen).
				Dur("duration", result.Duration).
				Msg("watch stopped")
			return result, nil

		case ev, ok := <-notifier.Events():
			if !ok {
				result.Duration = time.Since(start)
				return result, nil
			}
			result.EventsSeen++
			we := models.WatchEvent{Path: ev.Name, Op: ev.Op.String(), Time: time.Now()}
			s.logger.Debug().Str("path", we.Path).Str("op", we.Op).Msg("filesystem event")
			if events != nil {
				select {
				case events <- we:
				case <-ctx.Done():
					result.Duration = time.Since(start)
					return result, nil
				}
			}

		case err, ok := <-notifier.Errors():
			if !ok {
				result.Duration = time.Since(start)
				return result, nil
			}
			s.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

// drainEvents counts events still queued when the watch stops. Forwarding
// has ended; the consumer may already be gone.
func drainEvents(in <-chan fsnotify.Event) int {
	n := 0
	for {
		select {
		case _, ok := <-in:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}
