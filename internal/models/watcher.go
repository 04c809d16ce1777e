package models

import "time"

// WatchEvent describes one filesystem change observed under a watched
// backup path.
type WatchEvent struct {
	Path string    // file or directory the event refers to
	Op   string    // create, write, remove, rename, chmod
	Time time.Time // when the event was observed
}

// WatchResult holds the outcome of a completed watch session.
type WatchResult struct {
	EventsSeen int
	Duration   time.Duration
	Error      error
}
