package api

import (
	"sync"

	"github.com/threadnet-protocol/threadnet-go/pkg/discovery"
)

// subEventBuffer is the per-subscriber event queue depth. Broadcast never
// waits on a consumer; events beyond the buffer are dropped.
const subEventBuffer = 64

// RouterHub fans router lifecycle events out to API subscribers and owns
// the discovery controller's lifecycle: the first subscriber starts it,
// the last one leaving stops it and releases the multicast listener.
type RouterHub struct {
	controller *discovery.RouterDiscovery

	// mu guards lifecycle transitions (start/stop with the member count).
	mu sync.Mutex

	// subsMu guards only the subscriber set. Broadcast runs under it
	// without calling out, so registry callbacks never contend with
	// lifecycle calls into the controller.
	subsMu sync.Mutex
	subs   map[*RouterSub]struct{}
}

// RouterSub is one live discover_routers subscription. Events queue up
// from the moment Subscribe registers it; delivery to the callback begins
// when the owner calls Start, so the owner can acknowledge the request
// before any event goes out.
type RouterSub struct {
	fn     func(Event)
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// Start begins delivering queued and future events to the callback.
func (s *RouterSub) Start() {
	s.once.Do(func() { go s.drain() })
}

func (s *RouterSub) drain() {
	for {
		select {
		case event := <-s.events:
			s.fn(event)
		case <-s.done:
			return
		}
	}
}

// NewRouterHub builds the hub and its discovery controller. The given
// config's OnDiscovered and OnRemoved callbacks are replaced with the
// hub's fan-out.
func NewRouterHub(cfg discovery.Config) *RouterHub {
	h := &RouterHub{
		subs: make(map[*RouterSub]struct{}),
	}
	cfg.OnDiscovered = func(r *discovery.Router) {
		h.broadcast(RouterDiscoveredEvent(r))
	}
	cfg.OnRemoved = func(key string) {
		h.broadcast(RouterRemovedEvent(key))
	}
	h.controller = discovery.NewRouterDiscovery(cfg)
	return h
}

// Subscribe registers an event callback and starts discovery if this is
// the first subscriber. It returns the subscription plus a snapshot of the
// routers already known, so the caller can replay them to the client in
// its own order; the subscription is idle until Start is called.
func (h *RouterHub) Subscribe(fn func(Event)) (*RouterSub, []*discovery.Router, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscriberCount() == 0 {
		if err := h.controller.Start(); err != nil {
			return nil, nil, err
		}
	}

	sub := &RouterSub{
		fn:     fn,
		events: make(chan Event, subEventBuffer),
		done:   make(chan struct{}),
	}

	h.subsMu.Lock()
	h.subs[sub] = struct{}{}
	h.subsMu.Unlock()

	// Snapshot after registration so nothing announced in between is
	// missed; a router present in both the snapshot and the queue just
	// signals twice.
	return sub, h.controller.Routers(), nil
}

// Unsubscribe removes the subscription and stops its delivery goroutine.
// When the last subscriber leaves, the discovery controller is stopped and
// its registry cleared.
func (h *RouterHub) Unsubscribe(sub *RouterSub) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.subsMu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.subsMu.Unlock()
	if !ok {
		return nil
	}
	close(sub.done)

	if h.subscriberCount() == 0 {
		return h.controller.Stop()
	}
	return nil
}

// Routers returns the currently discovered routers.
func (h *RouterHub) Routers() []*discovery.Router {
	return h.controller.Routers()
}

func (h *RouterHub) subscriberCount() int {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	return len(h.subs)
}

// broadcast enqueues the event for every subscriber. A subscriber whose
// queue is full is skipped: a client that stops reading loses events
// rather than stalling resolution goroutines holding the registry lock.
func (h *RouterHub) broadcast(event Event) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()

	for sub := range h.subs {
		select {
		case sub.events <- event:
		default:
		}
	}
}
