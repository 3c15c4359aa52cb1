package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testDebounce = 30 * time.Millisecond

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func waitForUpdate(t *testing.T, w *Watcher) *Config {
	t.Helper()
	select {
	case cfg, ok := <-w.Updates():
		require.True(t, ok, "updates closed early")
		return cfg
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return nil
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeConfig(t, path, `{}`)

	w, err := NewWatcher(path, testDebounce)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeConfig(t, path, `{"layout": {"min_width": 22, "max_width": 30, "initial_width": 25}}`)

	cfg := waitForUpdate(t, w)
	assert.Equal(t, 22, cfg.Layout.MinWidth)
	assert.Equal(t, 30, cfg.Layout.MaxWidth)
}

func TestWatcherSkipsInvalidEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeConfig(t, path, `{}`)

	w, err := NewWatcher(path, testDebounce)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeConfig(t, path, `{"layout": {"min_width": 90, "max_width": 30}}`)
	time.Sleep(10 * testDebounce)

	// Unrelated files in the directory are ignored.
	writeConfig(t, filepath.Join(dir, "other.json"), `{}`)
	time.Sleep(5 * testDebounce)

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected update %+v", cfg)
	default:
	}

	writeConfig(t, path, `{"theme": "light"}`)
	cfg := waitForUpdate(t, w)
	assert.Equal(t, ThemeLight, cfg.Theme)
}

func TestWatcherStopClosesUpdates(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()), "starting twice is a no-op")

	w.Stop()
	_, ok := <-w.Updates()
	assert.False(t, ok)
	w.Stop()
}

func TestWatcherStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	w, err := NewWatcher(path, testDebounce)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	_, ok := <-w.Updates()
	assert.False(t, ok, "cancelling the context ends the watcher")
	w.Stop()
}
