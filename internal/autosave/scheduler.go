// Package autosave implements the debounced flush window for the editor.
//
// The machine has two states. An edit in IDLE opens a fixed window and
// moves to PENDING; edits while PENDING ride the existing window rather
// than resetting it, so a continuous typist still flushes once per window.
// Expiry closes the window and reports whether anything actually changed
// since the last flush.
package autosave

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// Window is the debounce duration between the first pending edit and the
// automatic flush.
const Window = time.Second

// State is the scheduler state.
type State int

const (
	StateIdle State = iota
	StatePending
)

// Scheduler tracks the dirty window for the active note. It is not
// concurrency-safe; like the rest of the session it lives on the UI loop.
type Scheduler struct {
	state   State
	noteID  int64
	flushed uint64 // hash of the last content known to be in the store
}

// New returns a scheduler in IDLE with no active note.
func New() *Scheduler {
	return &Scheduler{}
}

// State returns the current state.
func (s *Scheduler) State() State {
	return s.state
}

// NoteOpened resets the baseline to the note's stored title and content.
// Any running window for the previous note is abandoned; the caller is
// expected to have flushed it before switching.
func (s *Scheduler) NoteOpened(id int64, title, content string) {
	s.noteID = id
	s.flushed = sum(title, content)
	s.state = StateIdle
}

// Edit records an edit and reports whether a new window timer must be
// armed. Only the IDLE→PENDING transition arms a timer; while PENDING the
// first window keeps running.
func (s *Scheduler) Edit() bool {
	if s.state == StatePending {
		return false
	}
	s.state = StatePending
	return true
}

// Expire closes the window for the given note and reports whether a flush
// is due: true when the window was open and the current title+content
// differ from the last flushed bytes. An expiry carrying a stale note id
// is ignored and leaves the current window running.
func (s *Scheduler) Expire(id int64, title, content string) bool {
	if s.state != StatePending {
		return false
	}
	if id != s.noteID {
		// Stale timer from a note that is no longer active. The current
		// note's window keeps running; only its own expiry may close it.
		return false
	}
	s.state = StateIdle
	return sum(title, content) != s.flushed
}

// Flushed records a successful store write as the new baseline.
func (s *Scheduler) Flushed(title, content string) {
	s.flushed = sum(title, content)
}

// Dirty reports whether the given state differs from the last flush, used
// for the final flush when the window has not expired at switch/quit time.
func (s *Scheduler) Dirty(title, content string) bool {
	return sum(title, content) != s.flushed
}

func sum(title, content string) uint64 {
	d := xxhash.New()
	d.WriteString(title)
	d.Write([]byte{0})
	d.WriteString(content)
	return d.Sum64()
}
