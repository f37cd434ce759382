// Package trace keeps a bounded log of what the snap engine decided and
// what crossed the coordination bus, for display after the fact.
package trace

import (
	"fmt"
	"io"
	"strings"
	"time"

	"storysnap/internal/clock"
	"storysnap/internal/domain"
	"storysnap/internal/eventbus"
	"storysnap/internal/snap"
)

// DefaultLimit is the number of entries kept when no limit is given
const DefaultLimit = 500

// Kind classifies a trace entry
type Kind string

const (
	KindDecision     Kind = "decision"
	KindLocked       Kind = "locked"
	KindProgrammatic Kind = "programmatic"
	KindActive       Kind = "active"
	KindInput        Kind = "input"
)

// Entry is one recorded line
type Entry struct {
	At     time.Duration // since the recorder was created
	Kind   Kind
	Detail string
}

// String formats the entry as a single line
func (e Entry) String() string {
	return fmt.Sprintf("%8.1fms  %-12s %s", float64(e.At)/float64(time.Millisecond), e.Kind, e.Detail)
}

// Recorder collects entries. Like the engine it is driven from one loop.
type Recorder struct {
	clock   clock.Clock
	start   time.Time
	limit   int
	entries []Entry
	dropped int
	unsubs  []func()
}

// New creates a recorder that timestamps entries with c
func New(c clock.Clock, limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recorder{
		clock: c,
		start: c.Now(),
		limit: limit,
	}
}

// Attach records every coordination message published on bus
func (r *Recorder) Attach(bus eventbus.EventBus) {
	r.unsubs = append(r.unsubs,
		bus.Subscribe(eventbus.EventProgrammaticScroll, r.onEvent),
		bus.Subscribe(eventbus.EventSectionLocked, r.onEvent),
	)
}

// Detach removes the bus subscriptions
func (r *Recorder) Detach() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}

func (r *Recorder) onEvent(e eventbus.CoordinationEvent) {
	switch ev := e.(type) {
	case domain.ProgrammaticScrollEvent:
		r.Add(KindProgrammatic, "source=%s target=%.0f hold=%s", ev.Source, ev.Target, ev.Hold)
	case domain.SectionLockedEvent:
		r.Add(KindLocked, "section=%s index=%d position=%.0f", ev.SectionID, ev.Index, ev.Position)
	}
}

// Decision records the outcome of a decision cycle
func (r *Recorder) Decision(d snap.Decision) {
	var b strings.Builder
	b.WriteString(d.Outcome.String())
	if d.Target.ID != "" {
		fmt.Fprintf(&b, " target=%s position=%.0f distance=%.0f", d.Target.ID, d.Target.Position, d.Target.Distance)
	}
	if d.Gate != "" {
		fmt.Fprintf(&b, " gate=%s", d.Gate)
	}
	if d.Zone != "" {
		fmt.Fprintf(&b, " zone=%s", d.Zone)
	}
	r.Add(KindDecision, "%s", b.String())
}

// Active records an active section change
func (r *Recorder) Active(a domain.ActiveSection) {
	r.Add(KindActive, "section=%s index=%d", a.ID, a.Index)
}

// Add records a formatted entry, evicting the oldest past the limit
func (r *Recorder) Add(kind Kind, format string, args ...any) {
	r.entries = append(r.entries, Entry{
		At:     r.clock.Now().Sub(r.start),
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
	if over := len(r.entries) - r.limit; over > 0 {
		r.entries = append(r.entries[:0:0], r.entries[over:]...)
		r.dropped += over
	}
}

// Entries returns a copy of the kept entries, oldest first
func (r *Recorder) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Filter returns the kept entries of one kind
func (r *Recorder) Filter(kind Kind) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of kept entries
func (r *Recorder) Len() int {
	return len(r.entries)
}

// WriteTo writes one line per entry
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if r.dropped > 0 {
		c, err := fmt.Fprintf(w, "(%d older entries dropped)\n", r.dropped)
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	for _, e := range r.entries {
		c, err := fmt.Fprintln(w, e.String())
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// String renders the whole trace
func (r *Recorder) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}
