package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// EventKind identifies an Event
type EventKind int

const (
	EventLocation EventKind = iota
	EventHeaderTick
	EventBottomTick
	EventReset
	EventFlagged
	EventDirection
	EventPauseBottom
	EventResumeBottom
)

func (k EventKind) String() string {
	switch k {
	case EventLocation:
		return "location"
	case EventHeaderTick:
		return "header-tick"
	case EventBottomTick:
		return "bottom-tick"
	case EventReset:
		return "reset"
	case EventFlagged:
		return "flagged"
	case EventDirection:
		return "direction"
	case EventPauseBottom:
		return "pause-bottom"
	case EventResumeBottom:
		return "resume-bottom"
	}
	return "unknown"
}

// Event is one input to the journey. Only the fields for its Kind are read.
type Event struct {
	Kind       EventKind
	Sample     models.LocationSample
	Generation uint64
	Flagged    []int64
	Direction  models.Direction
}

// LocationEvent wraps a sample
func LocationEvent(s models.LocationSample) Event {
	return Event{Kind: EventLocation, Sample: s}
}

// Dispatcher feeds events to an Engine one at a time
type Dispatcher struct {
	engine  *Engine
	publish func(Event, Snapshot)
}

// NewDispatcher creates a dispatcher. publish is called after every event
// that changed something; it may be nil.
func NewDispatcher(e *Engine, publish func(Event, Snapshot)) *Dispatcher {
	if publish == nil {
		publish = func(Event, Snapshot) {}
	}
	return &Dispatcher{engine: e, publish: publish}
}

// Run consumes events until ctx is done or the channel is closed. It stops
// the engine on return, so ticks still in flight become no-ops.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	defer d.engine.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if snap, changed := d.Handle(ev); changed {
				d.publish(ev, snap)
			}
		}
	}
}

// Handle processes a single event to completion
func (d *Dispatcher) Handle(ev Event) (Snapshot, bool) {
	e := d.engine
	switch ev.Kind {
	case EventLocation:
		return e.HandleLocation(ev.Sample)
	case EventHeaderTick:
		return e.HandleHeaderTick(ev.Generation)
	case EventBottomTick:
		return e.HandleBottomTick(ev.Generation)
	}

	if !e.Alive() {
		return Snapshot{}, false
	}
	switch ev.Kind {
	case EventReset:
		return e.Reset(), true
	case EventFlagged:
		e.SetFlagged(ev.Flagged)
		return e.Snapshot(), true
	case EventDirection:
		return e.SetDirection(ev.Direction), true
	case EventPauseBottom:
		e.PauseBottom()
		return e.Snapshot(), true
	case EventResumeBottom:
		e.ResumeBottom()
		return e.Snapshot(), true
	}
	return Snapshot{}, false
}

// Timers are the header and bottom tick sources of one run
type Timers struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StartTimers starts both tick sources. Every tick carries gen so the
// engine can drop ticks from an earlier run. Stop must be called on
// teardown.
func StartTimers(ctx context.Context, clock Clock, gen uint64, header, bottom time.Duration, events chan<- Event) *Timers {
	ctx, cancel := context.WithCancel(ctx)
	t := &Timers{cancel: cancel}
	t.start(ctx, clock.NewTicker(header), Event{Kind: EventHeaderTick, Generation: gen}, events)
	t.start(ctx, clock.NewTicker(bottom), Event{Kind: EventBottomTick, Generation: gen}, events)
	return t
}

func (t *Timers) start(ctx context.Context, ticker Ticker, ev Event, events chan<- Event) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C():
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

// Stop cancels both tick sources and waits for them to exit
func (t *Timers) Stop() {
	t.cancel()
	t.wg.Wait()
}
