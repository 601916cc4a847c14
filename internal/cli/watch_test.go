package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStyleWatcher_Run(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, ".mdl.rb")
	require.NoError(t, os.WriteFile(path, []byte("all\n"), 0o600))

	watcher, err := newStyleWatcher([]string{path})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	changed := make(chan struct{}, 1)
	done := make(chan error, 1)

	go func() {
		done <- watcher.Run(ctx, 10*time.Millisecond, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	require.NoError(t, os.WriteFile(path, []byte("all\nexclude_rule 'MD013'\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStyleWatcher_Matches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "style.rb")

	watcher, err := newStyleWatcher([]string{path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.watcher.Close() })

	assert.True(t, watcher.matches(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.True(t, watcher.matches(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	assert.False(t, watcher.matches(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, watcher.matches(fsnotify.Event{Name: filepath.Join(dir, "other.rb"), Op: fsnotify.Write}))
}

func TestNewStyleWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := newStyleWatcher([]string{filepath.Join(t.TempDir(), "gone", "style.rb")})
	require.Error(t, err)
}
