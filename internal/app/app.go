// Package app is the demo host for inline documents. It owns a backend,
// a vertical stack of views and a single-threaded event loop that runs
// backend events, deferred document updates and file reloads.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"

	"github.com/dshills/potato/internal/config"
	"github.com/dshills/potato/internal/inline"
	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
	"github.com/dshills/potato/internal/view"
)

var log = commonlog.GetLogger("potato.app")

// Style tags of the built-in panes.
const (
	TagHeading = "h1"
	TagBody    = "body"
	TagFile    = "file"
)

// Options configures the application.
type Options struct {
	// Config supplies settings. Nil uses config.Default().
	Config *config.Config

	// WatchFile overrides host.watchFile when non-empty.
	WatchFile string
}

// pane is one entry of the vertical view stack.
type pane struct {
	doc  *inline.Document
	view *view.View
}

// Application is the host: it answers view size and draw requests and
// drives the event loop.
type Application struct {
	cfg     *config.Config
	backend backend.Backend
	sched   *Scheduler
	metrics *Metrics

	panes   []*pane
	heading *pane
	body    *pane
	file    *pane

	watchPath string
	watcher   *fileWatcher
	changes   <-chan struct{}

	needsLayout bool
	needsDraw   bool

	events   chan backend.Event
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an application with its panes. Documents start empty and
// are populated once Run starts.
func New(opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	app := &Application{
		cfg:       cfg,
		sched:     NewScheduler(),
		metrics:   NewMetrics(),
		watchPath: cfg.Host().WatchFile,
		events:    make(chan backend.Event, 16),
		done:      make(chan struct{}),
	}
	if opts.WatchFile != "" {
		app.watchPath = opts.WatchFile
	}

	app.heading = app.addPane(TagHeading)
	app.body = app.addPane(TagBody)
	if app.watchPath != "" {
		app.file = app.addPane(TagFile)
	}
	return app
}

// AddPane appends a view bound to a new document at the bottom of the
// stack. The view starts from the style configured for tag.
func (app *Application) AddPane(tag string) *view.View {
	return app.addPane(tag).view
}

func (app *Application) addPane(tag string) *pane {
	vc := app.cfg.View()
	doc := inline.New()
	v := view.New(
		view.WithHost(app),
		view.WithWrap(vc.Wrap),
		view.WithStyleTag(tag),
		view.WithBaseStyle(app.cfg.Style(tag).Apply(core.DefaultStyle())),
	)
	v.SetDocument(doc)

	p := &pane{doc: doc, view: v}
	app.panes = append(app.panes, p)
	return p
}

// Views returns the view stack, top to bottom.
func (app *Application) Views() []*view.View {
	out := make([]*view.View, len(app.panes))
	for i, p := range app.panes {
		out[i] = p.view
	}
	return out
}

// QueueResize implements view.Host.
func (app *Application) QueueResize() {
	app.needsLayout = true
}

// QueueDraw implements view.Host.
func (app *Application) QueueDraw() {
	app.needsDraw = true
}

// SetBackend sets the surface the application draws on.
// Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Scheduler returns the loop's task queue.
func (app *Application) Scheduler() *Scheduler {
	return app.sched
}

// Metrics returns the loop counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// IsRunning returns true while Run is executing.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initializes the backend and runs the event loop until a quit key,
// Shutdown, or an error. A quit key returns ErrQuit.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer app.stop()

	if app.watchPath != "" {
		if err := app.startWatcher(); err != nil {
			log.Warningf("file watching disabled: %v", err)
		}
	}
	defer app.stopWatcher()

	app.populate()

	go app.pollEvents()
	log.Infof("running with %d panes", len(app.panes))
	return app.eventLoop()
}

// Shutdown asks a running event loop to return. Safe to call from any
// goroutine, more than once.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() { close(app.done) })
}

// stop ends the loop and unblocks the input goroutine.
func (app *Application) stop() {
	app.Shutdown()
	app.sched.Stop()
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// populate schedules the initial content of every pane.
func (app *Application) populate() {
	delay := app.cfg.Host().PopulateDelay

	DeferSetText(app.sched, app.heading.doc, delay, Title)
	Defer(app.sched, app.body.doc, delay, writeSample)
	if app.file != nil {
		app.reloadWatched()
	}
}

func (app *Application) startWatcher() error {
	w, err := newFileWatcher(app.watchPath, defaultDebounce)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}
	app.watcher = w
	app.changes = changes
	log.Infof("watching %s", app.watchPath)
	return nil
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Stop(); err != nil {
		log.Warningf("stopping watcher: %v", err)
	}
	app.watcher = nil
	app.changes = nil
}
