package ipc

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"switcheroo/internal/config"
)

// Client reads the published state from a running service.
type Client struct {
	conn *dbus.Conn
	name string
	path dbus.ObjectPath
}

// Dial connects to the configured bus. Close releases the connection.
func Dial(cfg *config.Config) (*Client, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	switch cfg.DBus.Bus {
	case config.BusSession:
		conn, err = dbus.ConnectSessionBus()
	default:
		conn, err = dbus.ConnectSystemBus()
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s bus: %w", cfg.DBus.Bus, err)
	}
	return &Client{conn: conn, name: cfg.DBus.Name, path: dbus.ObjectPath(cfg.DBus.ObjectPath)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Running reports whether some connection owns the service name.
func (c *Client) Running(ctx context.Context) (bool, error) {
	var owned bool
	if err := c.conn.BusObject().CallWithContext(ctx, nameHasOwnerCall, 0, c.name).Store(&owned); err != nil {
		return false, fmt.Errorf("query name owner: %w", err)
	}
	return owned, nil
}

// HasDualGpu reads the HasDualGpu property.
func (c *Client) HasDualGpu(ctx context.Context) (bool, error) {
	var value dbus.Variant
	call := c.conn.Object(c.name, c.path).CallWithContext(ctx, propertiesGetCall, 0, Interface, PropertyHasDualGpu)
	if err := call.Store(&value); err != nil {
		return false, fmt.Errorf("read %s: %w", PropertyHasDualGpu, err)
	}
	available, ok := value.Value().(bool)
	if !ok {
		return false, fmt.Errorf("read %s: unexpected signature %s", PropertyHasDualGpu, value.Signature())
	}
	return available, nil
}
