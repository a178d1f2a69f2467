package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter: services report changes through it
// ─────────────────────────────────────────────────────────────

// EventPresentationChanged is emitted after a batch is applied. Data is
// the presentation id.
const EventPresentationChanged = "slides:presentation-changed"

// EventEmitter receives change notifications. The MCP server implements
// it by notifying subscribed clients that a resource changed.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, string, any) {}

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}
