package plugin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/autodox/internal/errors"
)

type listener struct {
	id       ListenerID
	event    EventName
	priority int
	owner    string
	handler  Handler
}

// Application is the host extensions plug into. It owns the builder
// description, declared config values and lifecycle listeners.
type Application struct {
	Builder Builder
	Logger  *slog.Logger

	raw       map[string]yaml.Node
	values    map[string]ConfigValue
	order     []string
	listeners []listener
	nextID    ListenerID
	settingUp *Registration
	registry  *Registry
}

// NewApplication returns an application for builder. raw holds the user's
// config values by name; values not present fall back to declared defaults.
func NewApplication(builder Builder, raw map[string]yaml.Node, logger *slog.Logger) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = map[string]yaml.Node{}
	}
	return &Application{
		Builder:  builder,
		Logger:   logger,
		raw:      raw,
		values:   make(map[string]ConfigValue),
		registry: NewRegistry(),
	}
}

// AddConfigValue declares a config value. Names must be unique.
func (a *Application) AddConfigValue(name string, def any, rebuild Rebuild) error {
	if name == "" {
		return derrors.ValidationFailed("config value", "name is required")
	}
	if !rebuild.IsValid() {
		return derrors.ValidationFailed(name, fmt.Sprintf("invalid rebuild scope %q", rebuild))
	}
	if _, exists := a.values[name]; exists {
		return derrors.ValidationFailed(name, "config value already declared")
	}
	a.values[name] = ConfigValue{Name: name, Default: def, Rebuild: rebuild}
	a.order = append(a.order, name)
	return nil
}

// ConfigValues returns the declared config values in declaration order.
func (a *Application) ConfigValues() []ConfigValue {
	out := make([]ConfigValue, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.values[name])
	}
	return out
}

// Decode resolves config value name into out: the user's value when one was
// supplied, the declared default otherwise.
func (a *Application) Decode(name string, out any) error {
	cv, ok := a.values[name]
	if !ok {
		return derrors.InternalError("config value not declared", nil).WithContext("name", name)
	}
	if node, ok := a.raw[name]; ok {
		if err := node.Decode(out); err != nil {
			return derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityFatal, "invalid config value").
				WithContext("name", name)
		}
		return nil
	}
	var node yaml.Node
	if err := node.Encode(cv.Default); err != nil {
		return derrors.InternalError("encode default config value", err).WithContext("name", name)
	}
	if err := node.Decode(out); err != nil {
		return derrors.InternalError("decode default config value", err).WithContext("name", name)
	}
	return nil
}

// EnvFingerprint hashes every env-scoped config value as it currently
// resolves. A different fingerprint means cached build state is stale.
func (a *Application) EnvFingerprint() (string, error) {
	h := sha256.New()
	for _, name := range a.order {
		cv := a.values[name]
		if cv.Rebuild != RebuildEnv {
			continue
		}
		var (
			data []byte
			err  error
		)
		if node, ok := a.raw[name]; ok {
			data, err = yaml.Marshal(&node)
		} else {
			data, err = yaml.Marshal(cv.Default)
		}
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", name, err)
		}
		fmt.Fprintf(h, "%s\x00%s\x00", name, data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Connect registers handler for event. Lower priorities run first; equal
// priorities run in connection order.
func (a *Application) Connect(event EventName, priority int, handler Handler) ListenerID {
	a.nextID++
	l := listener{id: a.nextID, event: event, priority: priority, handler: handler}
	if a.settingUp != nil {
		l.owner = a.settingUp.Name
		a.settingUp.Listeners = append(a.settingUp.Listeners, l.id)
	}
	a.listeners = append(a.listeners, l)
	return l.id
}

// Disconnect removes a listener. It reports whether the id was connected.
func (a *Application) Disconnect(id ListenerID) bool {
	for i, l := range a.listeners {
		if l.id == id {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Emit runs the handlers connected to event. The first error stops emission.
func (a *Application) Emit(ctx context.Context, event EventName) error {
	var matched []listener
	for _, l := range a.listeners {
		if l.event == event {
			matched = append(matched, l)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].priority < matched[j].priority })

	for _, l := range matched {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Logger.Debug("Emitting event", slog.String("event", event.String()), slog.String("extension", l.owner))
		if err := l.handler(ctx, a); err != nil {
			owner := l.owner
			if owner == "" {
				owner = "application"
			}
			return NewPluginError(owner, event.String(), err)
		}
	}
	return nil
}

// Setup registers ext: it runs ext.Setup against a and records the returned
// metadata and every listener the extension connected.
func (a *Application) Setup(ext Extension) (*Registration, error) {
	if ext == nil {
		return nil, fmt.Errorf("cannot set up nil extension")
	}
	if a.registry.Has(ext.Name()) {
		return nil, fmt.Errorf("extension %s already registered", ext.Name())
	}

	reg := &Registration{Name: ext.Name()}
	a.settingUp = reg
	md, err := ext.Setup(a)
	a.settingUp = nil
	if err != nil {
		a.disconnectAll(reg)
		return nil, NewPluginError(ext.Name(), "setup", err)
	}
	reg.Metadata = md
	if err := a.registry.Register(reg); err != nil {
		a.disconnectAll(reg)
		return nil, err
	}
	a.Logger.Debug("Extension registered",
		slog.String("extension", reg.Name),
		slog.String("version", md.Version),
		slog.Bool("parallel_read_safe", md.ParallelReadSafe),
		slog.Bool("parallel_write_safe", md.ParallelWriteSafe))
	return reg, nil
}

// Teardown unregisters an extension and disconnects its listeners. Declared
// config values stay declared.
func (a *Application) Teardown(name string) error {
	reg, err := a.registry.Unregister(name)
	if err != nil {
		return err
	}
	a.disconnectAll(reg)
	return nil
}

// Extensions returns the registry of extensions set up on a.
func (a *Application) Extensions() *Registry {
	return a.registry
}

// Build runs the lifecycle: config-inited, builder-inited, build-finished.
func (a *Application) Build(ctx context.Context) error {
	for _, ev := range []EventName{EventConfigInited, EventBuilderInited, EventBuildFinished} {
		if err := a.Emit(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) disconnectAll(reg *Registration) {
	for _, id := range reg.Listeners {
		a.Disconnect(id)
	}
}
