package app

import (
	"os"
	"time"

	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
	"github.com/dshills/potato/internal/view"
)

// paneGap is the number of blank rows between stacked panes.
const paneGap = 1

// pollEvents forwards backend events to the loop until it stops.
func (app *Application) pollEvents() {
	for {
		ev := app.backend.PollEvent()
		select {
		case <-app.done:
			return
		default:
		}
		if ev.Type == backend.EventNone || ev.Type == backend.EventInterrupt {
			continue
		}
		select {
		case app.events <- ev:
		case <-app.done:
			return
		}
	}
}

// eventLoop is the main loop. Everything that touches documents or views
// runs here.
func (app *Application) eventLoop() error {
	app.render()

	for {
		select {
		case <-app.done:
			return nil

		case ev := <-app.events:
			app.metrics.RecordEvent()
			if err := app.handleEvent(ev); err != nil {
				return err
			}

		case <-app.sched.Wake():
			if n := app.sched.RunPending(); n > 0 {
				app.metrics.RecordTasks(n)
			}

		case <-app.changes:
			app.reloadWatched()
		}

		if app.needsLayout || app.needsDraw {
			app.render()
		}
	}
}

// handleEvent reacts to one backend event. A quit key yields ErrQuit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		switch ev.Key {
		case backend.KeyEscape, backend.KeyCtrlC:
			return ErrQuit
		case backend.KeyRune:
			if ev.Rune == 'q' {
				return ErrQuit
			}
		}
	case backend.EventResize:
		app.QueueResize()
	}
	return nil
}

// render stacks the panes top to bottom at the backend's width and
// flushes the frame.
func (app *Application) render() {
	start := time.Now()

	app.backend.Clear()
	width, height := app.backend.Size()

	top := 0
	for i, p := range app.panes {
		if i > 0 {
			top += paneGap
		}
		if top >= height {
			break
		}
		_, h := p.view.Measure(view.Vertical, width)
		rect := core.RectFromSize(top, 0, min(h, height-top), width)
		if !rect.IsEmpty() {
			p.view.Paint(region{s: app.backend, rect: rect}, app.foreground(p.view))
		}
		top += h
	}

	app.backend.Show()
	app.needsLayout = false
	app.needsDraw = false
	app.metrics.RecordRender(time.Since(start))
}

// foreground is the paint color for v: its style tag's color, or the
// configured view color.
func (app *Application) foreground(v *view.View) core.Color {
	if fg := v.BaseStyle().Foreground; !fg.IsDefault() {
		return fg
	}
	return app.cfg.View().Foreground
}

// reloadWatched replaces the file pane's text with the watched file.
func (app *Application) reloadWatched() {
	if app.file == nil {
		return
	}
	data, err := os.ReadFile(app.watchPath)
	if err != nil {
		log.Warningf("reading %s: %v", app.watchPath, err)
		return
	}
	DeferSetText(app.sched, app.file.doc, 0, string(data))
	app.metrics.RecordReload()
	log.Debugf("reloaded %s: %d bytes", app.watchPath, len(data))
}
