package ipc

import (
	_ "embed"
	"encoding/xml"
	"fmt"

	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
)

//go:embed net.hadess.SwitcherooControl.xml
var introspectionXML []byte

// LoadIntrospection parses the bundled introspection data and appends the
// standard Introspectable and Properties interfaces.
func LoadIntrospection() (*introspect.Node, error) {
	var node introspect.Node
	if err := xml.Unmarshal(introspectionXML, &node); err != nil {
		return nil, fmt.Errorf("parse introspection data: %w", err)
	}

	var found bool
	for _, iface := range node.Interfaces {
		if iface.Name != Interface {
			continue
		}
		for _, p := range iface.Properties {
			if p.Name == PropertyHasDualGpu && p.Type == "b" && p.Access == "read" {
				found = true
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("introspection data lacks read-only %s.%s", Interface, PropertyHasDualGpu)
	}

	node.Interfaces = append(node.Interfaces, introspect.IntrospectData, prop.IntrospectData)
	return &node, nil
}
