package plugin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"gopkg.in/yaml.v3"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawValues(t *testing.T, doc string) map[string]yaml.Node {
	t.Helper()
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return raw
}

type testExtension struct {
	name     string
	metadata Metadata
	setupErr error
	setup    func(app *Application)
}

func (e *testExtension) Name() string { return e.name }

func (e *testExtension) Setup(app *Application) (Metadata, error) {
	if e.setup != nil {
		e.setup(app)
	}
	return e.metadata, e.setupErr
}

func TestMetadataValidation(t *testing.T) {
	if err := (Metadata{}).Validate(); err == nil {
		t.Error("Metadata without version should be invalid")
	}
	if err := (Metadata{Version: "0.1.0"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRebuildValidation(t *testing.T) {
	for _, r := range []Rebuild{RebuildEnv, RebuildHTML, RebuildNone} {
		if !r.IsValid() {
			t.Errorf("%q should be valid", r)
		}
	}
	if Rebuild("latex").IsValid() {
		t.Error("unknown rebuild scope should be invalid")
	}
}

func TestPluginError(t *testing.T) {
	cause := errors.New("boom")
	err := NewPluginError("autodox", "builder-inited", cause)

	if !errors.Is(err, cause) {
		t.Error("PluginError should unwrap to cause")
	}
	want := "extension autodox failed during builder-inited: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"html":       "html",
		"dirhtml":    "html",
		"singlehtml": "html",
		"latex":      "latex",
		"epub3":      "epub3",
	}
	for name, want := range tests {
		if got := FormatFor(name); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestAddConfigValueRejectsDuplicates(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())

	if err := app.AddConfigValue("x", "a", RebuildEnv); err != nil {
		t.Fatalf("AddConfigValue() failed: %v", err)
	}
	if err := app.AddConfigValue("x", "b", RebuildEnv); err == nil {
		t.Error("duplicate config value should fail")
	}
	if err := app.AddConfigValue("y", "b", Rebuild("bogus")); err == nil {
		t.Error("invalid rebuild scope should fail")
	}
	if got := len(app.ConfigValues()); got != 1 {
		t.Errorf("ConfigValues() len = %d, want 1", got)
	}
}

func TestDecodeUsesUserValueOrDefault(t *testing.T) {
	raw := rawValues(t, "given: from-user\nbad: [1, 2]\n")
	app := NewApplication(NewBuilder("html", "/src", "/out"), raw, quietLogger())
	for name, def := range map[string]any{"given": "default", "missing": "default", "bad": "default"} {
		if err := app.AddConfigValue(name, def, RebuildEnv); err != nil {
			t.Fatal(err)
		}
	}

	var s string
	if err := app.Decode("given", &s); err != nil || s != "from-user" {
		t.Errorf("Decode(given) = %q, %v", s, err)
	}
	if err := app.Decode("missing", &s); err != nil || s != "default" {
		t.Errorf("Decode(missing) = %q, %v", s, err)
	}
	if err := app.Decode("bad", &s); err == nil {
		t.Error("Decode(bad) should fail for a sequence into a string")
	}
	if err := app.Decode("undeclared", &s); err == nil {
		t.Error("Decode(undeclared) should fail")
	}
}

func TestEmitOrdersByPriorityThenConnection(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())

	var order []string
	record := func(tag string) Handler {
		return func(context.Context, *Application) error {
			order = append(order, tag)
			return nil
		}
	}
	app.Connect(EventBuilderInited, 500, record("late"))
	app.Connect(EventBuilderInited, 0, record("first"))
	app.Connect(EventBuilderInited, 0, record("second"))
	app.Connect(EventConfigInited, 0, record("other-event"))

	if err := app.Emit(context.Background(), EventBuilderInited); err != nil {
		t.Fatalf("Emit() failed: %v", err)
	}
	want := []string{"first", "second", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestEmitStopsAtFirstError(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())
	cause := errors.New("failed")
	called := false

	app.Connect(EventBuilderInited, 0, func(context.Context, *Application) error { return cause })
	app.Connect(EventBuilderInited, 1, func(context.Context, *Application) error {
		called = true
		return nil
	})

	err := app.Emit(context.Background(), EventBuilderInited)
	if !errors.Is(err, cause) {
		t.Fatalf("Emit() = %v, want wrapped cause", err)
	}
	var pe *PluginError
	if !errors.As(err, &pe) || pe.Operation != "builder-inited" {
		t.Errorf("expected PluginError for builder-inited, got %v", err)
	}
	if called {
		t.Error("later handler should not run after an error")
	}
}

func TestDisconnect(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())
	calls := 0
	id := app.Connect(EventBuildFinished, 0, func(context.Context, *Application) error {
		calls++
		return nil
	})

	if !app.Disconnect(id) {
		t.Fatal("Disconnect() should report a connected listener")
	}
	if app.Disconnect(id) {
		t.Error("Disconnect() twice should report false")
	}
	if err := app.Emit(context.Background(), EventBuildFinished); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Errorf("disconnected handler ran %d times", calls)
	}
}

func TestSetupRecordsListenersAndTeardown(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())
	calls := 0
	ext := &testExtension{
		name:     "counter",
		metadata: Metadata{Version: "1.0.0", ParallelReadSafe: true},
		setup: func(app *Application) {
			app.Connect(EventBuilderInited, 0, func(context.Context, *Application) error {
				calls++
				return nil
			})
		},
	}

	reg, err := app.Setup(ext)
	if err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}
	if len(reg.Listeners) != 1 {
		t.Errorf("Listeners = %v, want one", reg.Listeners)
	}
	if !app.Extensions().Has("counter") {
		t.Error("extension should be registered")
	}
	if _, err := app.Setup(ext); err == nil {
		t.Error("second Setup() of the same extension should fail")
	}

	if err := app.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	if err := app.Teardown("counter"); err != nil {
		t.Fatal(err)
	}
	if err := app.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("handler ran after Teardown, calls = %d", calls)
	}
}

func TestSetupFailureDisconnects(t *testing.T) {
	app := NewApplication(NewBuilder("html", "/src", "/out"), nil, quietLogger())
	calls := 0
	ext := &testExtension{
		name:     "broken",
		setupErr: errors.New("nope"),
		setup: func(app *Application) {
			app.Connect(EventBuilderInited, 0, func(context.Context, *Application) error {
				calls++
				return nil
			})
		},
	}

	if _, err := app.Setup(ext); err == nil {
		t.Fatal("Setup() should fail")
	}
	if app.Extensions().Has("broken") {
		t.Error("failed extension should not be registered")
	}
	if err := app.Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("listeners of a failed setup should be disconnected")
	}
}

func TestEnvFingerprint(t *testing.T) {
	newApp := func(doc string) *Application {
		app := NewApplication(NewBuilder("html", "/src", "/out"), rawValues(t, doc), quietLogger())
		if err := app.AddConfigValue("env_value", "x", RebuildEnv); err != nil {
			t.Fatal(err)
		}
		if err := app.AddConfigValue("html_value", "y", RebuildHTML); err != nil {
			t.Fatal(err)
		}
		return app
	}

	base, err := newApp("{}").EnvFingerprint()
	if err != nil {
		t.Fatal(err)
	}
	same, _ := newApp("html_value: changed\n").EnvFingerprint()
	changed, _ := newApp("env_value: changed\n").EnvFingerprint()

	if base != same {
		t.Error("html-scoped change should not affect the env fingerprint")
	}
	if base == changed {
		t.Error("env-scoped change should affect the env fingerprint")
	}
}
