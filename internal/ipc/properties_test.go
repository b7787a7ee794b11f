package ipc

import (
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPropertiesGet(t *testing.T) {
	props := &properties{state: NewState(true)}

	value, dbusErr := props.Get(Interface, PropertyHasDualGpu)
	if dbusErr != nil {
		t.Fatalf("Get returned error: %v", dbusErr)
	}
	if v, ok := value.Value().(bool); !ok || !v {
		t.Fatalf("expected true, got %#v", value)
	}
	if value.Signature().String() != "b" {
		t.Fatalf("expected boolean signature, got %s", value.Signature())
	}
}

func TestPropertiesGetUnknown(t *testing.T) {
	props := &properties{state: NewState(true)}

	if _, dbusErr := props.Get(Interface, "HasTripleGpu"); dbusErr == nil || dbusErr.Name != errUnknownProperty {
		t.Fatalf("expected UnknownProperty, got %v", dbusErr)
	}
	if _, dbusErr := props.Get("org.example.Other", PropertyHasDualGpu); dbusErr == nil || dbusErr.Name != errUnknownInterface {
		t.Fatalf("expected UnknownInterface, got %v", dbusErr)
	}
}

func TestPropertiesGetAll(t *testing.T) {
	props := &properties{state: NewState(false)}

	all, dbusErr := props.GetAll(Interface)
	if dbusErr != nil {
		t.Fatalf("GetAll returned error: %v", dbusErr)
	}
	if len(all) != 1 {
		t.Fatalf("expected one property, got %d", len(all))
	}
	if v, ok := all[PropertyHasDualGpu].Value().(bool); !ok || v {
		t.Fatalf("expected false, got %#v", all)
	}
}

func TestPropertiesSetIsReadOnly(t *testing.T) {
	props := &properties{state: NewState(true)}

	dbusErr := props.Set(Interface, PropertyHasDualGpu, dbus.MakeVariant(false))
	if dbusErr == nil || dbusErr.Name != errPropertyReadOnly {
		t.Fatalf("expected PropertyReadOnly, got %v", dbusErr)
	}
	if v, _ := props.state.Property(PropertyHasDualGpu); !v.Value().(bool) {
		t.Fatal("value must not change")
	}
	if dbusErr := props.Set(Interface, "Nope", dbus.MakeVariant(1)); dbusErr == nil || dbusErr.Name != errUnknownProperty {
		t.Fatalf("expected UnknownProperty, got %v", dbusErr)
	}
}

func TestStatePropertyUnknownHasNoValue(t *testing.T) {
	state := NewState(true)
	value, ok := state.Property("Other")
	if ok {
		t.Fatal("expected unknown property")
	}
	if value.Value() != nil {
		t.Fatalf("expected empty variant, got %#v", value)
	}
}

func TestLoadIntrospection(t *testing.T) {
	node, err := LoadIntrospection()
	if err != nil {
		t.Fatalf("LoadIntrospection: %v", err)
	}
	names := make([]string, 0, len(node.Interfaces))
	for _, iface := range node.Interfaces {
		names = append(names, iface.Name)
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{Interface, "org.freedesktop.DBus.Introspectable", "org.freedesktop.DBus.Properties"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected interface %s in %s", want, joined)
		}
	}
	if len(node.Interfaces[0].Properties) != 1 || node.Interfaces[0].Properties[0].Name != PropertyHasDualGpu {
		t.Fatalf("unexpected properties: %#v", node.Interfaces[0].Properties)
	}
}
