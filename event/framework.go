/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package event

// BundleEventType enumerates component lifecycle transitions.
type BundleEventType int

const (
	// BundleInstalled event is posted when a component is installed into the container.
	BundleInstalled BundleEventType = iota

	// BundleStarted event is posted when a component becomes active.
	BundleStarted

	// BundleStopped event is posted when a component stops or fails to start.
	BundleStopped

	// BundleUninstalled event is posted when a component is removed from the container.
	BundleUninstalled
)

func (t BundleEventType) String() string {
	switch t {
	case BundleInstalled:
		return "installed"
	case BundleStarted:
		return "started"
	case BundleStopped:
		return "stopped"
	case BundleUninstalled:
		return "uninstalled"
	}
	return "unknown"
}

// BundleEvent contains all information associated to a component lifecycle transition.
type BundleEvent struct {
	// Type is the lifecycle transition.
	Type BundleEventType

	// BundleID is the container assigned component identifier.
	BundleID int64

	// Name is the component name.
	Name string
}

// ServiceEventType enumerates service registry changes.
type ServiceEventType int

const (
	// ServiceRegistered event is posted after a service is registered.
	ServiceRegistered ServiceEventType = iota

	// ServiceUnregistering event is posted before a service is removed from the registry.
	ServiceUnregistering
)

func (t ServiceEventType) String() string {
	switch t {
	case ServiceRegistered:
		return "registered"
	case ServiceUnregistering:
		return "unregistering"
	}
	return "unknown"
}

// ServiceEvent contains all information associated to a service registry change.
type ServiceEvent struct {
	// Type is the registry change.
	Type ServiceEventType

	// Name is the service registration name.
	Name string

	// Service is the registered service instance.
	Service interface{}
}
