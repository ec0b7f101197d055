package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, files ...string) *Watcher {
	t.Helper()
	w, err := New(files, 20*time.Millisecond, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no watch event")
	}
	return Event{}
}

func assertQuiet(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReportsChange(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "car.glb")
	require.NoError(t, os.WriteFile(model, []byte("v1"), 0644))
	w := startWatcher(t, model)

	require.NoError(t, os.WriteFile(model, []byte("v2"), 0644))
	ev := waitEvent(t, w)
	assert.Equal(t, model, ev.Path)
	assert.False(t, ev.Removed)
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "car.glb")
	require.NoError(t, os.WriteFile(model, []byte("v1"), 0644))
	w := startWatcher(t, model)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	assertQuiet(t, w)
}

func TestSkipsUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	materials := filepath.Join(dir, "materials.yaml")
	require.NoError(t, os.WriteFile(materials, []byte("main: []"), 0644))
	w := startWatcher(t, materials)

	require.NoError(t, os.WriteFile(materials, []byte("main: []"), 0644))
	assertQuiet(t, w)
}

func TestReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "car.glb")
	require.NoError(t, os.WriteFile(model, []byte("v1"), 0644))
	w := startWatcher(t, model)

	require.NoError(t, os.Remove(model))
	ev := waitEvent(t, w)
	assert.True(t, ev.Removed)
}

func TestDebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "car.glb")
	require.NoError(t, os.WriteFile(model, []byte("v0"), 0644))
	w, err := New([]string{model}, 300*time.Millisecond, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	for _, v := range []string{"v1", "v2", "v3"} {
		require.NoError(t, os.WriteFile(model, []byte(v), 0644))
	}
	waitEvent(t, w)
	select {
	case <-w.Events():
		t.Fatal("burst of writes should produce one event")
	case <-time.After(700 * time.Millisecond):
	}
}
