package event

import (
	"slices"
	"sync"

	"github.com/stationery/backoffice/internal/domain/shared"
)

// subscription is one handler and the event types it receives; nil types means every event
type subscription struct {
	handler shared.EventHandler
	types   map[string]struct{}
}

func (s subscription) wildcard() bool { return s.types == nil }

// HandlerRegistry keeps handlers in the order they were first registered
type HandlerRegistry struct {
	mu   sync.RWMutex
	subs []subscription
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// Register subscribes handler to eventTypes, or to every event when none are
// given. Registering again widens the existing subscription.
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.subs, func(s subscription) bool { return s.handler == handler })
	if i < 0 {
		r.subs = append(r.subs, subscription{handler: handler, types: map[string]struct{}{}})
		i = len(r.subs) - 1
	}
	sub := &r.subs[i]
	if len(eventTypes) == 0 {
		sub.types = nil
		return
	}
	if sub.wildcard() {
		return
	}
	for _, t := range eventTypes {
		sub.types[t] = struct{}{}
	}
}

func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = slices.DeleteFunc(r.subs, func(s subscription) bool { return s.handler == handler })
}

// Handlers lists the handlers for eventType: specific subscribers first, then wildcard ones
func (r *HandlerRegistry) Handlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var typed, all []shared.EventHandler
	for _, s := range r.subs {
		if s.wildcard() {
			all = append(all, s.handler)
		} else if _, ok := s.types[eventType]; ok {
			typed = append(typed, s.handler)
		}
	}
	return append(typed, all...)
}

func (r *HandlerRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
