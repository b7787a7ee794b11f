package ipc

import (
	"github.com/godbus/dbus/v5"
)

// properties implements org.freedesktop.DBus.Properties for the exported
// object. godbus invokes these methods from its own goroutines; they only read
// the immutable Available flag.
type properties struct {
	state *State
}

func (p *properties) Get(iface, name string) (dbus.Variant, *dbus.Error) {
	if iface != Interface && iface != "" {
		return dbus.Variant{}, dbus.NewError(errUnknownInterface, []interface{}{"No such interface " + iface})
	}
	value, ok := p.state.Property(name)
	if !ok {
		return dbus.Variant{}, dbus.NewError(errUnknownProperty, []interface{}{"No such property " + name})
	}
	return value, nil
}

func (p *properties) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	if iface != Interface && iface != "" {
		return nil, dbus.NewError(errUnknownInterface, []interface{}{"No such interface " + iface})
	}
	return p.state.Properties(), nil
}

func (p *properties) Set(iface, name string, _ dbus.Variant) *dbus.Error {
	if iface != Interface {
		return dbus.NewError(errUnknownInterface, []interface{}{"No such interface " + iface})
	}
	if _, ok := p.state.Property(name); !ok {
		return dbus.NewError(errUnknownProperty, []interface{}{"No such property " + name})
	}
	return dbus.NewError(errPropertyReadOnly, []interface{}{"Property " + name + " is read-only"})
}
