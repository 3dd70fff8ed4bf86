// Package events implements the synchronous, per-route publish-subscribe
// channel screens use to observe navigation: focus and blur notifications,
// preventable lifecycle events, and any custom event a navigator chooses to
// emit.
//
// Everything here is single-threaded by contract, like the rest of the
// navigation core: Emit invokes listeners synchronously on the calling
// goroutine, and a listener is free to add or remove listeners or emit
// further events while one is being delivered. The emitter iterates a
// snapshot of its registry, so mutation during delivery is safe without any
// locking.
package events

// Well-known event types emitted by the composition layer. Navigators may
// emit any other type they like; these are the ones with core semantics.
const (
	// Focus fires on a route when it becomes part of the focused path.
	Focus = "focus"
	// Blur fires on a route when it leaves the focused path. Preventable:
	// a listener that calls PreventDefault vetoes the transition.
	Blur = "blur"
	// BeforeRemove fires on a route about to be dropped from its
	// navigator. Preventable.
	BeforeRemove = "beforeRemove"
)

// Event is what listeners receive and what Emit returns. The emitting
// navigator consults DefaultPrevented afterwards to decide whether to carry
// on with its default handling.
type Event struct {
	// Type is the event name listeners subscribed to.
	Type string

	// Target is the key of the route the event is scoped to; empty for
	// broadcasts.
	Target string

	// Data is the event payload, opaque to the emitter.
	Data any

	preventable bool
	prevented   bool
}

// PreventDefault asks the emitter to skip its default handling. It has an
// effect only when the emit declared the event preventable.
func (e *Event) PreventDefault() {
	if e.preventable {
		e.prevented = true
	}
}

// DefaultPrevented reports whether any listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Listener receives events. The event value is shared across listeners of
// one emission, so PreventDefault from any of them is visible to the emitter.
type Listener func(*Event)

// EmitOptions describes one emission.
type EmitOptions struct {
	// Type is the event name to deliver.
	Type string

	// Target restricts delivery to listeners registered for that route
	// key. Empty broadcasts to every listener of the type.
	Target string

	// Data is passed through to listeners untouched.
	Data any

	// CanPreventDefault lets listeners veto the emitter's default
	// handling via PreventDefault.
	CanPreventDefault bool
}

// listenerEntry ties a listener to the route that registered it. A nil fn
// marks an entry removed; entries are compacted on the next mutation rather
// than spliced mid-iteration.
type listenerEntry struct {
	target string
	fn     Listener
}

// Emitter is a per-tree event channel. The zero value is not usable; call
// NewEmitter.
type Emitter struct {
	listeners map[string][]*listenerEntry
}

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]*listenerEntry)}
}

// AddListener registers fn for events of the given type scoped to the route
// with key target. It returns the unregistration function; calling it more
// than once is a no-op after the first call.
func (e *Emitter) AddListener(target, eventType string, fn Listener) (remove func()) {
	entry := &listenerEntry{target: target, fn: fn}
	e.listeners[eventType] = append(e.listeners[eventType], entry)

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		entry.fn = nil
		e.compact(eventType)
	}
}

// RemoveTarget drops every listener registered by the route with the given
// key, across all event types. The composition layer calls it when a route
// is removed from its navigator.
func (e *Emitter) RemoveTarget(target string) {
	for eventType, entries := range e.listeners {
		for _, entry := range entries {
			if entry.target == target {
				entry.fn = nil
			}
		}
		e.compact(eventType)
	}
}

// Emit delivers one event synchronously, in subscription order, to every
// listener matching the type and target, and returns the event so the caller
// can consult DefaultPrevented. Listeners registered during delivery do not
// receive the in-flight event; listeners removed during delivery are skipped
// if not yet reached.
func (e *Emitter) Emit(opts EmitOptions) *Event {
	event := &Event{
		Type:        opts.Type,
		Target:      opts.Target,
		Data:        opts.Data,
		preventable: opts.CanPreventDefault,
	}

	snapshot := make([]*listenerEntry, len(e.listeners[opts.Type]))
	copy(snapshot, e.listeners[opts.Type])

	for _, entry := range snapshot {
		fn := entry.fn
		if fn == nil {
			continue
		}
		if opts.Target != "" && entry.target != opts.Target {
			continue
		}
		fn(event)
	}
	return event
}

// compact drops removed entries for one event type. Delivery iterates its
// own snapshot, so compacting here never disturbs an in-flight emission.
func (e *Emitter) compact(eventType string) {
	entries := e.listeners[eventType]
	kept := entries[:0]
	for _, entry := range entries {
		if entry.fn != nil {
			kept = append(kept, entry)
		}
	}
	if len(kept) == 0 {
		delete(e.listeners, eventType)
		return
	}
	e.listeners[eventType] = kept
}
