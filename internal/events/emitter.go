// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package events

import "sync"

// Emitter delivers events to a presentation surface.
// Emit is synchronous from the caller's view, does not wait for any
// acknowledgement, and never retries.
type Emitter interface {
	Emit(Event)
}

// BatchEmitter is an Emitter that can deliver a group of events together,
// either all of them or none.
type BatchEmitter interface {
	Emitter
	EmitBatch([]Event)
}

// EmitAll sends evs through em, as one batch when em is a BatchEmitter.
func EmitAll(em Emitter, evs ...Event) {
	if b, ok := em.(BatchEmitter); ok {
		b.EmitBatch(evs)
		return
	}
	for _, e := range evs {
		em.Emit(e)
	}
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Event)

// Emit calls f(e).
func (f EmitterFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Emitter = EmitterFunc(func(Event) {})

// Recorder keeps every emitted event in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// Last returns the most recent event, if any.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Fanout emits every event to each emitter in order.
type Fanout []Emitter

// Emit forwards e to every emitter.
func (f Fanout) Emit(e Event) {
	for _, em := range f {
		em.Emit(e)
	}
}
