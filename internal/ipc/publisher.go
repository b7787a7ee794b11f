package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"switcheroo/internal/config"
	"switcheroo/internal/logging"
	"switcheroo/internal/switcheroo"
)

// ErrNameLost reports that another connection owns, or took over, the bus name.
var ErrNameLost = errors.New("bus name lost")

// Conn is the subset of *dbus.Conn the publisher relies on.
type Conn interface {
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
	AddMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
	Close() error
}

// Dialer opens a connection to the named bus ("system" or "session").
type Dialer func(bus string) (Conn, error)

// DialBus connects to the system or session bus.
func DialBus(bus string) (Conn, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	switch bus {
	case config.BusSystem:
		conn, err = dbus.ConnectSystemBus()
	case config.BusSession:
		conn, err = dbus.ConnectSessionBus()
	default:
		return nil, fmt.Errorf("unknown bus %q", bus)
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

type eventKind int

const (
	eventBusAcquired eventKind = iota
	eventNameAcquired
	eventNameLost
)

func (k eventKind) String() string {
	switch k {
	case eventBusAcquired:
		return "bus-acquired"
	case eventNameAcquired:
		return "name-acquired"
	case eventNameLost:
		return "name-lost"
	default:
		return "unknown"
	}
}

type event struct {
	kind eventKind
	conn Conn
	err  error
}

// Publisher exposes State on the bus.
type Publisher struct {
	state  *State
	bus    string
	name   string
	path   dbus.ObjectPath
	dial   Dialer
	node   *introspect.Node
	logger *slog.Logger
}

// NewPublisher prepares a publisher for state. A nil dial uses DialBus.
func NewPublisher(cfg *config.Config, state *State, dial Dialer, logger *slog.Logger) (*Publisher, error) {
	if cfg == nil || state == nil {
		return nil, errors.New("publisher requires config and state")
	}
	node, err := LoadIntrospection()
	if err != nil {
		return nil, err
	}
	node.Name = cfg.DBus.ObjectPath
	if dial == nil {
		dial = DialBus
	}
	return &Publisher{
		state:  state,
		bus:    cfg.DBus.Bus,
		name:   cfg.DBus.Name,
		path:   dbus.ObjectPath(cfg.DBus.ObjectPath),
		dial:   dial,
		node:   node,
		logger: logging.NewComponentLogger(logger, "publisher"),
	}, nil
}

// Run connects, claims the bus name, and dispatches bus events until ctx is
// done or the name is lost. Name loss is returned as a clean exit request.
func (p *Publisher) Run(ctx context.Context) error {
	conn, err := p.dial(p.bus)
	if err != nil {
		return fmt.Errorf("connect to %s bus: %w", p.bus, err)
	}
	defer p.release(conn)

	signals := make(chan *dbus.Signal, 8)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(busPath),
		dbus.WithMatchInterface(busInterface),
		dbus.WithMatchMember(nameLostMember),
		dbus.WithMatchArg(0, p.name),
	); err != nil {
		p.logger.Debug("could not subscribe to name loss", logging.Error(err))
	}

	events := make(chan event, 2)
	p.acquire(conn, events)
	p.completeInit()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("publisher stopping", logging.String("reason", ctx.Err().Error()))
			return nil
		case ev := <-events:
			if err := p.dispatch(ev); err != nil {
				return err
			}
		case sig, ok := <-signals:
			if !ok {
				return errors.New("bus connection closed")
			}
			if p.isNameLost(sig) {
				if err := p.dispatch(event{kind: eventNameLost, err: ErrNameLost}); err != nil {
					return err
				}
			}
		}
	}
}

// acquire requests the well-known name and queues the resulting events.
func (p *Publisher) acquire(conn Conn, events chan<- event) {
	reply, err := conn.RequestName(p.name, dbus.NameFlagDoNotQueue)
	switch {
	case err != nil:
		events <- event{kind: eventNameLost, err: fmt.Errorf("request name: %w", err)}
	case reply != dbus.RequestNameReplyPrimaryOwner && reply != dbus.RequestNameReplyAlreadyOwner:
		events <- event{kind: eventNameLost, err: ErrNameLost}
	default:
		events <- event{kind: eventBusAcquired, conn: conn}
		events <- event{kind: eventNameAcquired}
	}
}

func (p *Publisher) dispatch(ev event) error {
	p.logger.Debug("bus event", logging.String(logging.FieldEventType, ev.kind.String()))
	switch ev.kind {
	case eventBusAcquired:
		return p.onBusAcquired(ev.conn)
	case eventNameAcquired:
		p.onNameAcquired()
	case eventNameLost:
		return p.onNameLost(ev.err)
	}
	return nil
}

func (p *Publisher) onBusAcquired(conn Conn) error {
	if err := conn.Export(&properties{state: p.state}, p.path, propertiesInterface); err != nil {
		return fmt.Errorf("export properties: %w", err)
	}
	if err := conn.Export(introspect.NewIntrospectable(p.node), p.path, introspectableInterface); err != nil {
		return fmt.Errorf("export introspection: %w", err)
	}
	p.state.conn = conn
	return nil
}

func (p *Publisher) onNameAcquired() {
	p.state.nameOwned = true
	p.logger.Debug("bus name acquired", logging.String("name", p.name))
	if p.state.InitDone {
		p.announce()
	}
}

func (p *Publisher) onNameLost(err error) error {
	p.logger.Debug("switcheroo-control is already running, or it cannot own its D-Bus name",
		logging.String("name", p.name),
		logging.Error(err),
	)
	return switcheroo.Exit(switcheroo.ExitOK, "bus name unavailable", errors.Join(ErrNameLost, err))
}

// completeInit marks startup done and announces right away when the
// connection and name are already in place.
func (p *Publisher) completeInit() {
	p.state.InitDone = true
	if p.state.conn != nil && p.state.nameOwned {
		p.announce()
	}
}

// announce emits PropertiesChanged at most once.
func (p *Publisher) announce() {
	if p.state.announced || p.state.conn == nil {
		return
	}
	p.state.announced = true
	err := p.state.conn.Emit(p.path, propertiesChangedSignal,
		Interface,
		p.state.Properties(),
		[]string{},
	)
	if err != nil {
		logging.WarnWithContext(p.logger, "could not emit PropertiesChanged", "properties_changed_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "subscribers must read HasDualGpu explicitly"),
		)
		return
	}
	p.logger.Info("dual GPU state published",
		logging.Bool(PropertyHasDualGpu, p.state.Available),
		logging.String(logging.FieldEventType, "state_published"),
	)
}

func (p *Publisher) isNameLost(sig *dbus.Signal) bool {
	if sig == nil || sig.Name != nameLostSignal || len(sig.Body) == 0 {
		return false
	}
	name, ok := sig.Body[0].(string)
	return ok && name == p.name
}

func (p *Publisher) release(conn Conn) {
	p.state.conn = nil
	if err := conn.Close(); err != nil {
		p.logger.Debug("closing bus connection failed", logging.Error(err))
	}
}
