package discovery

import "sync"

// RouterRegistry is the in-memory table of currently-known border routers,
// keyed by fingerprint. It also tracks which instance name announced which
// key, since removal callbacks carry no TXT data to derive the key from.
//
// Signal callbacks run synchronously under the registry lock so emission
// order matches mutation order; they must not call back into the registry.
type RouterRegistry struct {
	mu sync.Mutex

	routers       map[string]*Router
	keysByService map[string]string

	onDiscovered func(*Router)
	onRemoved    func(key string)
}

// NewRouterRegistry creates an empty registry. Either callback may be nil.
func NewRouterRegistry(onDiscovered func(*Router), onRemoved func(key string)) *RouterRegistry {
	return &RouterRegistry{
		routers:       make(map[string]*Router),
		keysByService: make(map[string]string),
		onDiscovered:  onDiscovered,
		onRemoved:     onRemoved,
	}
}

// Upsert inserts or replaces the router announced by the given instance
// name and signals a discovery. Replacement signals exactly like a fresh
// insert: consumers don't distinguish updates from discoveries, and an
// unchanged record still re-signals.
func (r *RouterRegistry) Upsert(instance string, router *Router) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routers[router.Key] = router
	r.keysByService[instance] = router.Key

	if r.onDiscovered != nil {
		r.onDiscovered(router)
	}
}

// Remove drops the router announced by the given instance name and signals
// removal with its key. Unknown instance names, and instance names whose
// router was already removed through another announcement, are silent no-ops.
func (r *RouterRegistry) Remove(instance string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.keysByService[instance]
	if !ok {
		return "", false
	}
	delete(r.keysByService, instance)

	if _, ok := r.routers[key]; !ok {
		return "", false
	}
	delete(r.routers, key)

	if r.onRemoved != nil {
		r.onRemoved(key)
	}
	return key, true
}

// Clear drops all entries without signaling. Used for silent teardown when
// a discovery session ends.
func (r *RouterRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.routers = make(map[string]*Router)
	r.keysByService = make(map[string]string)
}

// Routers returns a snapshot of the known routers.
func (r *RouterRegistry) Routers() []*Router {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Router, 0, len(r.routers))
	for _, router := range r.routers {
		out = append(out, router)
	}
	return out
}

// Len returns the number of known routers.
func (r *RouterRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.routers)
}
