package app

import (
	"time"
	"weak"

	"github.com/dshills/potato/internal/inline"
)

// Defer runs fn against doc on the scheduler's loop after d.
//
// The task holds only a weak reference to doc. If the document has been
// garbage collected by the time the task runs, the task does nothing.
func Defer(s *Scheduler, doc *inline.Document, d time.Duration, fn func(*inline.Document)) *Task {
	ref := weak.Make(doc)
	return s.After(d, func() {
		target := ref.Value()
		if target == nil {
			log.Debug("deferred document update dropped: document collected")
			return
		}
		fn(target)
	})
}

// DeferSetText replaces doc's text with text after d. See Defer.
func DeferSetText(s *Scheduler, doc *inline.Document, d time.Duration, text string) *Task {
	return Defer(s, doc, d, func(doc *inline.Document) {
		doc.SetText(text)
	})
}
