package stream

import "sync"

// Handler processes one routed message.
type Handler func(Message)

// Router dispatches parsed frames to a handler keyed by subscription
// key. Re-registering a key replaces its handler; routing a key with
// no registered handler is a silent no-op.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]Handler)}
}

// RegisterHandler stores fn keyed by key, replacing any prior handler
// for the same key.
func (r *Router) RegisterHandler(key string, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[key] = fn
}

// Unregister removes the handler for key, if any.
func (r *Router) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, key)
}

// Route looks up the handler for key and invokes it with msg. Returns
// false if no handler was registered.
func (r *Router) Route(key string, msg Message) bool {
	r.mu.RLock()
	fn, ok := r.handlers[key]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	fn(msg)
	return true
}
