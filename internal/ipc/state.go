package ipc

import "github.com/godbus/dbus/v5"

// State is the service state shared between startup and the bus handlers.
// Only the publisher's dispatch loop mutates it.
type State struct {
	// Available mirrors the probe result and never changes after startup.
	Available bool
	// InitDone gates the change notification on name acquisition.
	InitDone bool

	conn      Conn
	nameOwned bool
	announced bool
}

// NewState returns the state for a completed probe.
func NewState(available bool) *State {
	return &State{Available: available}
}

// Property answers a property read. ok is false for unknown properties.
func (s *State) Property(name string) (dbus.Variant, bool) {
	if name == PropertyHasDualGpu {
		return dbus.MakeVariant(s.Available), true
	}
	return dbus.Variant{}, false
}

// Properties returns every readable property.
func (s *State) Properties() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		PropertyHasDualGpu: dbus.MakeVariant(s.Available),
	}
}
