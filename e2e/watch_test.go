//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bacman-dev/bacman/internal/config"
	"github.com/bacman-dev/bacman/internal/models"
	"github.com/bacman-dev/bacman/internal/services/watcher"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestWatchDetectsFileChange_E2E(t *testing.T) {
	dataDir := t.TempDir()

	svc := watcher.New(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.WatchEvent, 16)
	done := make(chan struct{})
	var result *models.WatchResult
	var werr error
	go func() {
		result, werr = svc.Watch(ctx, []string{dataDir}, events)
		close(done)
	}()

	// Give the watcher a moment to register before changing anything
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "file.txt"), []byte("hello"), 0o600))

	select {
	case ev := <-events:
		assert.Contains(t, ev.Path, dataDir)
	case <-time.After(2 * time.Second):
		t.Fatal("no filesystem event received")
	}

	cancel()
	<-done

	require.NoError(t, werr)
	assert.Nil(t, result.Error)
	assert.GreaterOrEqual(t, result.EventsSeen, 1)
}

func TestLoadAndWatch_E2E(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := t.TempDir()
	confDir := t.TempDir()

	content := fmt.Sprintf(`
[global]
default_profile = "standard"

[profiles.standard]
encrypt = true
backup_method = ["local"]
backup_to = %q
interval = "7d"

[[backup_paths]]
path = %q
`, backupDir, dataDir)
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(content), 0o644))

	t.Setenv(config.EnvConfigDir, confDir)

	loader := config.NewLoader(testLogger())
	resolved, err := loader.Load()
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	paths := models.ExtractPaths(resolved)

	svc := watcher.New(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan models.WatchEvent, 16)
	done := make(chan struct{})
	var result *models.WatchResult
	var werr error
	go func() {
		result, werr = svc.Watch(ctx, paths, events)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "changed.txt"), []byte("x"), 0o600))

	select {
	case ev := <-events:
		assert.Contains(t, ev.Path, dataDir)
	case <-time.After(2 * time.Second):
		t.Fatal("no filesystem event received")
	}

	cancel()
	<-done

	require.NoError(t, werr)
	assert.Nil(t, result.Error)
	assert.GreaterOrEqual(t, result.EventsSeen, 1)
}
