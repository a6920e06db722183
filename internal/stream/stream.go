package stream

import "sync"

// Handler consumes one raw output payload for a run.
type Handler func(payload string)

// Dispatcher routes inbound output notifications, keyed by run identifier,
// to the session attached to that run. Delivery is synchronous, so payloads
// published in order arrive in order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Subscribe registers the handler for runID, replacing any previous one.
func (d *Dispatcher) Subscribe(runID string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[runID] = h
}

// Unsubscribe removes the handler for runID. Unknown ids are a no-op.
func (d *Dispatcher) Unsubscribe(runID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handlers, runID)
}

// Publish delivers payload to the handler subscribed for runID and reports
// whether anyone received it.
func (d *Dispatcher) Publish(runID, payload string) bool {
	d.mu.RLock()
	h := d.handlers[runID]
	d.mu.RUnlock()
	if h == nil {
		return false
	}
	h(payload)
	return true
}
