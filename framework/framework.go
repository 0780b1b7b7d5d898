/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package framework

import (
	"context"
	"sync"

	"github.com/atalk/xmppcore/event"
	"github.com/atalk/xmppcore/log"
	"github.com/pkg/errors"
)

var (
	// ErrBundleNotFound is returned when a bundle id is not installed.
	ErrBundleNotFound = errors.New("framework: bundle not found")

	// ErrServiceNotFound is returned when unregistering an unknown service.
	ErrServiceNotFound = errors.New("framework: service not found")
)

// Component is a unit whose lifecycle is driven by the container.
type Component interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// State represents a bundle lifecycle state.
type State int

const (
	// Installed is the state of a bundle right after installation.
	Installed State = iota

	// Resolved bundles are ready to be started.
	Resolved

	// Starting is the state while the component Start method runs.
	Starting

	// Active bundles have been successfully started.
	Active

	// Stopping is the state while the component Stop method runs.
	Stopping

	// Uninstalled bundles have been removed from the container.
	Uninstalled
)

func (s State) String() string {
	switch s {
	case Installed:
		return "installed"
	case Resolved:
		return "resolved"
	case Starting:
		return "starting"
	case Active:
		return "active"
	case Stopping:
		return "stopping"
	case Uninstalled:
		return "uninstalled"
	}
	return "unknown"
}

// Bundle represents an installed component.
type Bundle struct {
	id    int64
	name  string
	comp  Component
	mu    sync.RWMutex
	state State
}

// ID returns the container assigned bundle identifier.
func (b *Bundle) ID() int64 { return b.id }

// Name returns the bundle name.
func (b *Bundle) Name() string { return b.name }

// Component returns the bundle component.
func (b *Bundle) Component() Component { return b.comp }

// State returns the current bundle state.
func (b *Bundle) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Bundle) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Container installs components, drives their lifecycle and holds the service registry.
type Container struct {
	d        *event.Dispatcher
	mu       sync.RWMutex
	lastID   int64
	bundles  []*Bundle
	services map[string]interface{}
}

// New returns an empty container firing lifecycle events through d.
func New(d *event.Dispatcher) *Container {
	return &Container{
		d:        d,
		services: make(map[string]interface{}),
	}
}

// Dispatcher returns the container event dispatcher.
func (c *Container) Dispatcher() *event.Dispatcher { return c.d }

// Install adds comp to the container under name.
func (c *Container) Install(name string, comp Component) (*Bundle, error) {
	c.mu.Lock()
	for _, b := range c.bundles {
		if b.name == name {
			c.mu.Unlock()
			return nil, errors.Errorf("framework: bundle %s already installed", name)
		}
	}
	c.lastID++
	b := &Bundle{id: c.lastID, name: name, comp: comp, state: Installed}
	c.bundles = append(c.bundles, b)
	c.mu.Unlock()

	c.fireBundleEvent(event.BundleInstalled, b)

	// no dependency resolution takes place
	b.setState(Resolved)
	log.Infof("framework: installed bundle %s (id: %d)", name, b.id)
	return b, nil
}

// Bundle returns the bundle identified by id.
func (c *Container) Bundle(id int64) (*Bundle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, b := range c.bundles {
		if b.id == id {
			return b, nil
		}
	}
	return nil, ErrBundleNotFound
}

// Bundles returns all installed bundles in installation order.
func (c *Container) Bundles() []*Bundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Bundle(nil), c.bundles...)
}

// Start starts the bundle identified by id.
// A component failing to start moves the bundle back to resolved.
func (c *Container) Start(ctx context.Context, id int64) error {
	b, err := c.Bundle(id)
	if err != nil {
		return err
	}
	return c.start(ctx, b)
}

// Stop stops the bundle identified by id.
func (c *Container) Stop(ctx context.Context, id int64) error {
	b, err := c.Bundle(id)
	if err != nil {
		return err
	}
	return c.stop(ctx, b)
}

// Uninstall stops the bundle identified by id, if needed, and removes it from the container.
// Every listener the bundle registered is dropped.
func (c *Container) Uninstall(ctx context.Context, id int64) error {
	b, err := c.Bundle(id)
	if err != nil {
		return err
	}
	if err := c.stop(ctx, b); err != nil {
		return err
	}
	c.mu.Lock()
	for i, ib := range c.bundles {
		if ib == b {
			c.bundles = append(c.bundles[:i:i], c.bundles[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	b.setState(Uninstalled)
	c.d.RemoveOwner(b.name)
	c.fireBundleEvent(event.BundleUninstalled, b)

	log.Infof("framework: uninstalled bundle %s (id: %d)", b.name, b.id)
	return nil
}

// StartAll starts every installed bundle in installation order.
func (c *Container) StartAll(ctx context.Context) error {
	for _, b := range c.Bundles() {
		if err := c.start(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops every active bundle in reverse installation order.
// The first error is returned after every bundle has been given the chance to stop.
func (c *Container) StopAll(ctx context.Context) error {
	var firstErr error
	bundles := c.Bundles()
	for i := len(bundles) - 1; i >= 0; i-- {
		if err := c.stop(ctx, bundles[i]); err != nil {
			log.Error(err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Register adds svc to the service registry under name.
func (c *Container) Register(name string, svc interface{}) error {
	c.mu.Lock()
	if _, ok := c.services[name]; ok {
		c.mu.Unlock()
		return errors.Errorf("framework: service %s already registered", name)
	}
	c.services[name] = svc
	c.mu.Unlock()

	c.fireServiceEvent(event.ServiceRegistered, name, svc)
	return nil
}

// Service returns the service registered under name.
func (c *Container) Service(name string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	svc, ok := c.services[name]
	return svc, ok
}

// Unregister removes the service registered under name.
func (c *Container) Unregister(name string) error {
	c.mu.RLock()
	svc, ok := c.services[name]
	c.mu.RUnlock()
	if !ok {
		return ErrServiceNotFound
	}
	c.fireServiceEvent(event.ServiceUnregistering, name, svc)

	c.mu.Lock()
	delete(c.services, name)
	c.mu.Unlock()
	return nil
}

func (c *Container) start(ctx context.Context, b *Bundle) error {
	b.mu.Lock()
	switch b.state {
	case Active:
		b.mu.Unlock()
		return nil
	case Resolved:
		b.state = Starting
		b.mu.Unlock()
	default:
		st := b.state
		b.mu.Unlock()
		return errors.Errorf("framework: cannot start bundle %s in %s state", b.name, st)
	}
	if err := b.comp.Start(ctx); err != nil {
		b.setState(Resolved)
		c.fireBundleEvent(event.BundleStopped, b)
		return errors.Wrapf(err, "framework: failed to start bundle %s", b.name)
	}
	b.setState(Active)
	c.fireBundleEvent(event.BundleStarted, b)

	log.Infof("framework: started bundle %s", b.name)
	return nil
}

func (c *Container) stop(ctx context.Context, b *Bundle) error {
	b.mu.Lock()
	if b.state != Active {
		b.mu.Unlock()
		return nil
	}
	b.state = Stopping
	b.mu.Unlock()

	err := b.comp.Stop(ctx)
	b.setState(Resolved)
	c.fireBundleEvent(event.BundleStopped, b)
	if err != nil {
		return errors.Wrapf(err, "framework: failed to stop bundle %s", b.name)
	}
	log.Infof("framework: stopped bundle %s", b.name)
	return nil
}

func (c *Container) fireBundleEvent(tp event.BundleEventType, b *Bundle) {
	_ = c.d.Dispatch(event.BundleClass, &event.BundleEvent{Type: tp, BundleID: b.id, Name: b.name})
}

func (c *Container) fireServiceEvent(tp event.ServiceEventType, name string, svc interface{}) {
	_ = c.d.Dispatch(event.ServiceClass, &event.ServiceEvent{Type: tp, Name: name, Service: svc})
}
