package discovery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/threadnet-protocol/threadnet-go/pkg/log"
)

// Config configures a RouterDiscovery.
type Config struct {
	// Browser is the DNS-SD transport. Required.
	Browser ServiceBrowser

	// OnDiscovered is invoked for every successful resolution, fresh
	// discovery and re-announcement alike.
	OnDiscovered func(*Router)

	// OnRemoved is invoked with the fingerprint of a withdrawn router.
	OnRemoved func(key string)

	// ResolveTimeout bounds each resolution. Defaults to ResolveTimeout.
	ResolveTimeout time.Duration

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Audit receives audit events. Defaults to log.NoopLogger.
	Audit log.Logger
}

// RouterDiscovery bridges a ServiceBrowser to a RouterRegistry.
//
// It is a two-state machine: idle until Start subscribes to border agent
// announcements, subscribed until Stop tears the session down. Each
// add/update callback triggers an independent asynchronous resolution;
// resolutions for different instance names run concurrently, while a
// per-instance-name lock serializes registry mutation so two resolutions
// of the same name cannot interleave (last resolved wins). Resolution
// failures are swallowed: the instance is simply never discovered.
type RouterDiscovery struct {
	logger         *slog.Logger
	audit          log.Logger
	browser        ServiceBrowser
	registry       *RouterRegistry
	resolveTimeout time.Duration

	mu         sync.Mutex
	subscribed bool
	cancel     context.CancelFunc
	ctx        context.Context
	nameLocks  map[string]*sync.Mutex
	wg         sync.WaitGroup
}

// NewRouterDiscovery creates an idle RouterDiscovery.
func NewRouterDiscovery(cfg Config) *RouterDiscovery {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Audit == nil {
		cfg.Audit = log.NoopLogger{}
	}
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = ResolveTimeout
	}

	return &RouterDiscovery{
		logger:         cfg.Logger,
		audit:          cfg.Audit,
		browser:        cfg.Browser,
		registry:       NewRouterRegistry(cfg.OnDiscovered, cfg.OnRemoved),
		resolveTimeout: cfg.ResolveTimeout,
		nameLocks:      make(map[string]*sync.Mutex),
	}
}

// Start subscribes to border agent announcements. Calling Start while
// already subscribed is an error, not a silent no-op.
func (d *RouterDiscovery) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.subscribed {
		return ErrAlreadySubscribed
	}

	if err := d.browser.Subscribe(ServiceTypeBorderRouter, routerListener{d}); err != nil {
		return err
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	d.subscribed = true

	d.logger.Info("router discovery started", "service", ServiceTypeBorderRouter)
	d.audit.Log(log.DiscoveryEvent(log.ActionSubscribed, "", ServiceTypeBorderRouter))
	return nil
}

// Stop unsubscribes from the browser, waits for in-flight resolutions and
// clears the registry. The teardown emits no removal events. Stopping an
// idle controller is a no-op.
func (d *RouterDiscovery) Stop() error {
	d.mu.Lock()
	if !d.subscribed {
		d.mu.Unlock()
		return nil
	}
	d.subscribed = false
	d.cancel()
	err := d.browser.Unsubscribe()
	d.mu.Unlock()

	d.wg.Wait()
	d.registry.Clear()

	d.mu.Lock()
	d.nameLocks = make(map[string]*sync.Mutex)
	d.mu.Unlock()

	d.logger.Info("router discovery stopped")
	d.audit.Log(log.DiscoveryEvent(log.ActionUnsubscribed, "", ServiceTypeBorderRouter))
	return err
}

// Routers returns a snapshot of the currently-known routers.
func (d *RouterDiscovery) Routers() []*Router {
	return d.registry.Routers()
}

// routerListener adapts ServiceListener callbacks onto the controller.
// Add and update are handled identically: both mean "resolve and upsert".
type routerListener struct {
	d *RouterDiscovery
}

func (l routerListener) AddService(serviceType, instance string) {
	l.d.handleAddUpdate(serviceType, instance)
}

func (l routerListener) UpdateService(serviceType, instance string) {
	l.d.handleAddUpdate(serviceType, instance)
}

func (l routerListener) RemoveService(serviceType, instance string) {
	l.d.handleRemove(instance)
}

func (d *RouterDiscovery) handleAddUpdate(serviceType, instance string) {
	d.mu.Lock()
	if !d.subscribed {
		d.mu.Unlock()
		return
	}
	ctx := d.ctx
	d.wg.Add(1)
	d.mu.Unlock()

	go d.resolveAndUpsert(ctx, serviceType, instance)
}

func (d *RouterDiscovery) resolveAndUpsert(ctx context.Context, serviceType, instance string) {
	defer d.wg.Done()

	rctx, cancel := context.WithTimeout(ctx, d.resolveTimeout)
	defer cancel()

	entry, err := d.browser.Resolve(rctx, serviceType, instance)
	if err != nil {
		// Swallowed: the service stays unknown.
		d.logger.Debug("failed to resolve border agent service",
			"instance", instance, "error", err)
		d.auditResolveFailed(instance, err)
		return
	}

	router, err := entry.ToRouter()
	if err != nil {
		d.logger.Debug("ignoring unusable border agent service",
			"instance", instance, "error", err)
		d.auditResolveFailed(instance, err)
		return
	}

	lock := d.nameLock(instance)
	lock.Lock()
	defer lock.Unlock()

	d.mu.Lock()
	subscribed := d.subscribed
	d.mu.Unlock()
	if !subscribed {
		return
	}

	d.registry.Upsert(instance, router)
	d.logger.Debug("border router discovered",
		"key", router.Key, "network", router.NetworkName, "server", router.Server)

	event := log.DiscoveryEvent(log.ActionDiscovered, router.Key, instance)
	event.Network = router.NetworkName
	d.audit.Log(event)
}

func (d *RouterDiscovery) handleRemove(instance string) {
	lock := d.nameLock(instance)
	lock.Lock()
	defer lock.Unlock()

	if key, ok := d.registry.Remove(instance); ok {
		d.logger.Debug("border router removed", "key", key, "instance", instance)
		d.audit.Log(log.DiscoveryEvent(log.ActionRemoved, key, instance))
	}
}

// nameLock returns the serialization lock for one instance name. Locks live
// for the duration of a subscription session.
func (d *RouterDiscovery) nameLock(instance string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, ok := d.nameLocks[instance]
	if !ok {
		lock = &sync.Mutex{}
		d.nameLocks[instance] = lock
	}
	return lock
}

func (d *RouterDiscovery) auditResolveFailed(instance string, err error) {
	event := log.DiscoveryEvent(log.ActionResolveFailed, "", instance)
	event.Error = err.Error()
	d.audit.Log(event)
}
