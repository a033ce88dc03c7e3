package testutils

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Line is one recorded protocol line.
type Line struct {
	At     time.Duration
	Tag    string
	Fields []any
}

// String formats the line the way the chat link writes it.
func (l Line) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", l.At.Milliseconds(), l.Tag)
	for _, f := range l.Fields {
		fmt.Fprintf(&b, " %v", f)
	}
	return b.String()
}

// Recorder is a ports.Reporter that keeps every line in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
	Err   error
}

// Report implements ports.Reporter. It records the line even when Err is set.
func (r *Recorder) Report(at time.Duration, tag string, fields ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Line{At: at, Tag: tag, Fields: fields})
	return r.Err
}

// Lines returns every recorded line.
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines...)
}

// Tagged returns the recorded lines with the given tag.
func (r *Recorder) Tagged(tag string) []Line {
	var out []Line
	for _, l := range r.Lines() {
		if l.Tag == tag {
			out = append(out, l)
		}
	}
	return out
}

// Strings returns every line formatted.
func (r *Recorder) Strings() []string {
	lines := r.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Reset forgets every recorded line.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// Switch is a settable lick detector and output line.
type Switch struct {
	mu      sync.Mutex
	on      bool
	history []bool
}

// Licking implements ports.LickDetector.
func (s *Switch) Licking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on
}

// Set implements ports.Output and records the level.
func (s *Switch) Set(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = on
	s.history = append(s.history, on)
}

// History returns every level passed to Set.
func (s *Switch) History() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.history...)
}
