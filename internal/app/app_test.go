package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/potato/internal/config"
	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
)

func newTestApp(t *testing.T, opts Options) (*Application, *backend.NullBackend) {
	t.Helper()
	app := New(opts)
	b := backend.NewNullBackend(40, 12)
	require.NoError(t, app.SetBackend(b))
	return app, b
}

// rows returns every row of b.
func rows(b *backend.NullBackend) []string {
	_, height := b.Size()
	out := make([]string, height)
	for y := range out {
		out[y] = b.Row(y)
	}
	return out
}

func TestNewCreatesPanes(t *testing.T) {
	app := New(Options{})
	views := app.Views()
	require.Len(t, views, 2)
	assert.Equal(t, TagHeading, views[0].StyleTag())
	assert.Equal(t, TagBody, views[1].StyleTag())
	for _, v := range views {
		require.NotNil(t, v.Document())
		assert.True(t, v.Document().IsEmpty())
	}

	app = New(Options{WatchFile: "notes.txt"})
	views = app.Views()
	require.Len(t, views, 3)
	assert.Equal(t, TagFile, views[2].StyleTag())
}

func TestAddPane(t *testing.T) {
	app, b := newTestApp(t, Options{})
	v := app.AddPane("extra")

	views := app.Views()
	require.Len(t, views, 3)
	assert.Same(t, v, views[2])
	assert.Equal(t, "extra", v.StyleTag())

	app.needsLayout = false
	v.Document().SetText("added")
	assert.True(t, app.needsLayout)

	app.render()
	assert.Equal(t, "added", b.Row(4))
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		quit bool
	}{
		{"q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}, true},
		{"escape", backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}, true},
		{"ctrl-c", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlC}, true},
		{"other rune", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'}, false},
		{"enter", backend.Event{Type: backend.EventKey, Key: backend.KeyEnter}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New(Options{})
			err := app.handleEvent(tt.ev)
			if tt.quit {
				assert.ErrorIs(t, err, ErrQuit)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHandleResizeQueuesLayout(t *testing.T) {
	app := New(Options{})
	app.needsLayout = false

	require.NoError(t, app.handleEvent(backend.Event{Type: backend.EventResize, Width: 20, Height: 5}))
	assert.True(t, app.needsLayout)
}

func TestDocumentChangeQueuesLayout(t *testing.T) {
	app := New(Options{})
	app.needsLayout = false

	app.body.doc.SetText("changed")
	assert.True(t, app.needsLayout)
}

func TestRenderStacksPanes(t *testing.T) {
	app, b := newTestApp(t, Options{})
	app.heading.doc.SetText(Title)
	writeSample(app.body.doc)

	app.render()

	got := rows(b)
	assert.Equal(t, "potato", got[0])
	assert.Equal(t, "", got[1])
	assert.True(t, strings.HasPrefix(got[2], "Inline documents mix"), got[2])
	assert.Contains(t, strings.Join(got, "\n"), "◆")
	assert.False(t, app.needsLayout)
	assert.Equal(t, 1, b.Shows())
	assert.Equal(t, uint64(1), app.Metrics().Snapshot().Renders)
}

func TestRenderUsesStyleTagColor(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Set("styles.h1.foreground", "#ff0000"))
	require.NoError(t, cfg.Set("styles.h1.bold", true))

	app, b := newTestApp(t, Options{Config: cfg})
	app.heading.doc.SetText(Title)
	app.body.doc.SetText("plain")
	app.render()

	heading := b.GetCell(0, 0).Style
	assert.True(t, heading.Foreground.Equals(core.ColorFromRGB(0xff, 0, 0)))
	assert.True(t, heading.Attributes.Has(core.AttrBold))

	body := b.GetCell(0, 2).Style
	assert.True(t, body.Foreground.IsDefault())
	assert.False(t, body.Attributes.Has(core.AttrBold))
}

func TestRenderClipsToSurface(t *testing.T) {
	app := New(Options{})
	b := backend.NewNullBackend(9, 2)
	require.NoError(t, app.SetBackend(b))
	app.heading.doc.SetText("one two three four")
	app.body.doc.SetText("hidden")

	app.render()
	assert.Equal(t, []string{"one two", "three"}, rows(b))
}

func TestRunWithoutBackend(t *testing.T) {
	app := New(Options{})
	assert.ErrorIs(t, app.Run(), ErrNoBackend)
}

func TestRunQuitKey(t *testing.T) {
	app, b := newTestApp(t, Options{})
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'})

	err := app.Run()
	assert.ErrorIs(t, err, ErrQuit)
	assert.False(t, app.IsRunning())
	assert.GreaterOrEqual(t, b.Shows(), 1)
}

func TestRunPopulatesAndShutsDown(t *testing.T) {
	app, b := newTestApp(t, Options{})

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	assert.Eventually(t, func() bool {
		return app.Metrics().Snapshot().Tasks >= 2
	}, 2*time.Second, 5*time.Millisecond)

	app.Shutdown()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}

	assert.Equal(t, Title, app.heading.doc.Text())
	assert.False(t, app.body.doc.IsEmpty())
	assert.Equal(t, Title, b.Row(0))
}

func TestSetBackendWhileRunning(t *testing.T) {
	app := New(Options{})
	app.running.Store(true)
	assert.ErrorIs(t, app.SetBackend(backend.NewNullBackend(1, 1)), ErrAlreadyRunning)
	assert.ErrorIs(t, app.Run(), ErrNoBackend)
}

func TestReloadWatched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	app, b := newTestApp(t, Options{WatchFile: path})
	app.reloadWatched()
	waitWake(t, app.Scheduler())
	app.Scheduler().RunPending()
	assert.Equal(t, "first", app.file.doc.Text())

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	app.reloadWatched()
	waitWake(t, app.Scheduler())
	app.Scheduler().RunPending()
	assert.Equal(t, "second", app.file.doc.Text())
	assert.Equal(t, uint64(2), app.Metrics().Snapshot().Reloads)

	app.heading.doc.SetText(Title)
	app.render()
	assert.Equal(t, "second", b.Row(4))
}

func TestReloadWatchedMissingFile(t *testing.T) {
	app := New(Options{WatchFile: filepath.Join(t.TempDir(), "missing.txt")})
	app.reloadWatched()

	assert.Zero(t, app.Scheduler().Len())
	assert.Zero(t, app.Metrics().Snapshot().Reloads)
}
