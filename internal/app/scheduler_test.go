package app

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/potato/internal/inline"
)

// waitWake blocks until s has work or fails the test.
func waitWake(t *testing.T, s *Scheduler) {
	t.Helper()
	select {
	case <-s.Wake():
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler was not woken")
	}
}

func TestSchedulerRunsInPostOrder(t *testing.T) {
	s := NewScheduler()
	var got []int
	for i := range 3 {
		require.True(t, s.Post(func() { got = append(got, i) }))
	}
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, 3, s.RunPending())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Zero(t, s.Len())
}

func TestSchedulerNestedPostWaitsForNextRun(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.Post(func() {
		got = append(got, "outer")
		s.Post(func() { got = append(got, "inner") })
	})

	assert.Equal(t, 1, s.RunPending())
	assert.Equal(t, []string{"outer"}, got)
	assert.Equal(t, 1, s.RunPending())
	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.Post(func() { ran = true })

	s.Stop()
	assert.False(t, s.Post(func() { ran = true }))
	assert.Zero(t, s.RunPending())
	assert.False(t, ran)
}

func TestSchedulerAfter(t *testing.T) {
	s := NewScheduler()
	ran := false
	task := s.After(time.Millisecond, func() { ran = true })

	waitWake(t, s)
	assert.Equal(t, 1, s.RunPending())
	assert.True(t, ran)
	assert.False(t, task.Canceled())
}

func TestTaskCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	task := s.After(time.Millisecond, func() { ran = true })
	task.Cancel()
	task.Cancel()

	time.Sleep(20 * time.Millisecond)
	s.RunPending()
	assert.False(t, ran)
	assert.True(t, task.Canceled())

	var none *Task
	assert.NotPanics(t, none.Cancel)
	assert.False(t, none.Canceled())
}

func TestTaskCancelAfterTimerFired(t *testing.T) {
	s := NewScheduler()
	ran := false
	task := s.After(0, func() { ran = true })

	waitWake(t, s)
	task.Cancel()
	assert.Equal(t, 1, s.RunPending())
	assert.False(t, ran)
}

func TestDeferSetText(t *testing.T) {
	s := NewScheduler()
	doc := inline.New()
	changes := 0
	doc.OnChanged(func() { changes++ })

	DeferSetText(s, doc, 0, "hello")
	assert.Equal(t, "", doc.Text())

	waitWake(t, s)
	s.RunPending()
	assert.Equal(t, "hello", doc.Text())
	assert.Equal(t, 1, changes)
}

func TestDeferCanceled(t *testing.T) {
	s := NewScheduler()
	doc := inline.New()

	task := DeferSetText(s, doc, 10*time.Millisecond, "late")
	task.Cancel()

	time.Sleep(30 * time.Millisecond)
	s.RunPending()
	assert.Equal(t, "", doc.Text())
}

func TestDeferDropsCollectedDocument(t *testing.T) {
	s := NewScheduler()
	ran := false

	doc := inline.New()
	ref := weak.Make(doc)
	Defer(s, doc, 0, func(*inline.Document) { ran = true })
	doc = nil

	waitWake(t, s)
	for range 3 {
		runtime.GC()
	}
	if ref.Value() != nil {
		t.Skip("document not collected")
	}

	s.RunPending()
	assert.False(t, ran)
}
