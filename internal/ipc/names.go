package ipc

import "github.com/godbus/dbus/v5"

// Well-known names shared by the service and its clients.
const (
	BusName    = "net.hadess.SwitcherooControl"
	ObjectPath = dbus.ObjectPath("/net/hadess/SwitcherooControl")
	Interface  = "net.hadess.SwitcherooControl"

	// PropertyHasDualGpu is the only property exposed on Interface.
	PropertyHasDualGpu = "HasDualGpu"
)

const (
	propertiesInterface     = "org.freedesktop.DBus.Properties"
	propertiesChangedSignal = propertiesInterface + ".PropertiesChanged"
	introspectableInterface = "org.freedesktop.DBus.Introspectable"

	busInterface      = "org.freedesktop.DBus"
	busPath           = dbus.ObjectPath("/org/freedesktop/DBus")
	nameLostSignal    = busInterface + ".NameLost"
	nameLostMember    = "NameLost"
	nameHasOwnerCall  = busInterface + ".NameHasOwner"
	propertiesGetCall = propertiesInterface + ".Get"

	errUnknownProperty  = "org.freedesktop.DBus.Error.UnknownProperty"
	errUnknownInterface = "org.freedesktop.DBus.Error.UnknownInterface"
	errPropertyReadOnly = "org.freedesktop.DBus.Error.PropertyReadOnly"
)
