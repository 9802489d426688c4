package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// BrowserConfig configures MDNSBrowser behavior.
type BrowserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{Interface: ""}
}

// MDNSBrowser implements the ServiceBrowser interface using zeroconf.
//
// zeroconf delivers fully resolved entries on its browse channels, so the
// browser doubles as the resolver: the latest entry per instance name is
// cached, and Resolve answers from the cache or waits for the instance to
// show up in browse results.
type MDNSBrowser struct {
	config BrowserConfig

	mu      sync.Mutex
	cancel  context.CancelFunc
	entries map[string]*ServiceEntry
	waiters map[string][]chan *ServiceEntry
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	return &MDNSBrowser{
		config:  config,
		entries: make(map[string]*ServiceEntry),
		waiters: make(map[string][]chan *ServiceEntry),
	}
}

// Subscribe starts browsing for the given service type and feeds lifecycle
// callbacks to the listener.
func (b *MDNSBrowser) Subscribe(serviceType string, listener ServiceListener) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return ErrAlreadySubscribed
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	added := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go b.processEntries(ctx, serviceType, listener, added, removed)

	// Start browsing in background
	go func() {
		_ = zeroconf.Browse(ctx, serviceType, Domain, added, removed, b.browserOptions()...)
	}()

	return nil
}

// Unsubscribe stops browsing and drops all cached entries.
func (b *MDNSBrowser) Unsubscribe() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel == nil {
		return ErrNotSubscribed
	}

	b.cancel()
	b.cancel = nil
	b.entries = make(map[string]*ServiceEntry)
	b.waiters = make(map[string][]chan *ServiceEntry)
	return nil
}

// Resolve returns the resolved entry for the named instance, waiting for it
// to appear in browse results when it is not yet known.
func (b *MDNSBrowser) Resolve(ctx context.Context, serviceType, instance string) (*ServiceEntry, error) {
	b.mu.Lock()
	if entry, ok := b.entries[instance]; ok {
		b.mu.Unlock()
		return entry, nil
	}

	wait := make(chan *ServiceEntry, 1)
	b.waiters[instance] = append(b.waiters[instance], wait)
	b.mu.Unlock()

	select {
	case entry := <-wait:
		return entry, nil
	case <-ctx.Done():
		b.dropWaiter(instance, wait)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, instance)
	}
}

// processEntries folds zeroconf browse results into the entry cache and the
// listener callbacks.
func (b *MDNSBrowser) processEntries(ctx context.Context, serviceType string, listener ServiceListener, added, removed <-chan *zeroconf.ServiceEntry) {
	seen := make(map[string]bool)

	for {
		select {
		case entry, ok := <-added:
			if !ok {
				return
			}
			svc := toServiceEntry(entry)
			b.store(svc)

			if seen[svc.Instance] {
				listener.UpdateService(serviceType, svc.Instance)
			} else {
				seen[svc.Instance] = true
				listener.AddService(serviceType, svc.Instance)
			}

		case entry, ok := <-removed:
			if !ok {
				continue
			}
			b.mu.Lock()
			delete(b.entries, entry.Instance)
			b.mu.Unlock()
			delete(seen, entry.Instance)

			listener.RemoveService(serviceType, entry.Instance)

		case <-ctx.Done():
			return
		}
	}
}

// store caches the latest entry for an instance and fulfills pending
// Resolve calls.
func (b *MDNSBrowser) store(entry *ServiceEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[entry.Instance] = entry
	for _, wait := range b.waiters[entry.Instance] {
		wait <- entry
	}
	delete(b.waiters, entry.Instance)
}

// dropWaiter removes a Resolve waiter that gave up.
func (b *MDNSBrowser) dropWaiter(instance string, wait chan *ServiceEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pending := b.waiters[instance]
	for i, w := range pending {
		if w == wait {
			b.waiters[instance] = append(pending[:i], pending[i+1:]...)
			break
		}
	}
	if len(b.waiters[instance]) == 0 {
		delete(b.waiters, instance)
	}
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// toServiceEntry converts a zeroconf entry to a ServiceEntry.
func toServiceEntry(entry *zeroconf.ServiceEntry) *ServiceEntry {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &ServiceEntry{
		Instance:  entry.Instance,
		Host:      entry.HostName,
		Port:      uint16(entry.Port),
		Text:      entry.Text,
		Addresses: addrs,
	}
}

// Ensure MDNSBrowser implements ServiceBrowser interface.
var _ ServiceBrowser = (*MDNSBrowser)(nil)
