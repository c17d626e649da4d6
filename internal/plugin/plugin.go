// Package plugin provides the host side of the extension mechanism: config
// value declarations, lifecycle events and explicit extension registration.
//
// There is no process-wide registry. An Application is created per build and
// extensions are registered on it with Setup, which returns a Registration
// handle.
package plugin

import "context"

// Extension is a unit of functionality plugged into an Application.
type Extension interface {
	// Name is the unique extension identifier (e.g., "autodox").
	Name() string

	// Setup declares config values and connects handlers on app.
	Setup(app *Application) (Metadata, error)
}

// Handler runs when the event it is connected to is emitted.
type Handler func(ctx context.Context, app *Application) error

// ListenerID identifies one Connect call so it can be undone.
type ListenerID int

// Registration is the handle returned by Application.Setup.
type Registration struct {
	Name      string
	Metadata  Metadata
	Listeners []ListenerID
}
