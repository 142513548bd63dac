// Package daemon runs the hotkey event loop.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/1broseidon/windowkey/internal/geometry"
	"github.com/1broseidon/windowkey/internal/hotkeys"
	"github.com/charmbracelet/log"
)

// ErrEventLoopStopped is returned when the event loop ends without an exit
// request, e.g. because the display connection was lost.
var ErrEventLoopStopped = errors.New("event loop stopped unexpectedly")

// EventSource blocks delivering input events until Quit is called.
type EventSource interface {
	EventLoop()
	Quit()
}

// ActionHandler performs one hotkey action.
type ActionHandler interface {
	Handle(a geometry.Action) geometry.Decision
}

// Daemon ties the hotkey table to the geometry engine.
type Daemon struct {
	events   EventSource
	hotkeys  *hotkeys.Handler
	actions  ActionHandler
	bindings []hotkeys.Binding
	logger   *log.Logger

	// exitRequested is only touched from the event loop goroutine and read
	// after the loop has returned.
	exitRequested bool
}

// New creates a daemon serving the compiled hotkey table.
func New(events EventSource, handler *hotkeys.Handler, actions ActionHandler, logger *log.Logger) *Daemon {
	if logger == nil {
		logger = log.Default()
	}
	return &Daemon{
		events:   events,
		hotkeys:  handler,
		actions:  actions,
		bindings: hotkeys.Table(),
		logger:   logger.WithPrefix("daemon"),
	}
}

// Run registers the hotkeys and blocks in the event loop until the exit
// hotkey is pressed or ctx is cancelled. Hotkeys are unregistered on every
// return path, including a panic inside the loop.
func (d *Daemon) Run(ctx context.Context) error {
	n := d.hotkeys.RegisterAll(d.bindings, d.dispatch)
	defer d.hotkeys.UnregisterAll()

	d.logger.Info("hotkeys registered", "count", n, "total", len(d.bindings))
	d.logger.Info(hotkeys.UsageHint())

	stop := context.AfterFunc(ctx, func() {
		d.logger.Info("shutting down", "reason", context.Cause(ctx))
		d.events.Quit()
	})
	defer stop()

	if err := d.loop(); err != nil {
		return err
	}

	if d.exitRequested || ctx.Err() != nil {
		return nil
	}
	return ErrEventLoopStopped
}

func (d *Daemon) loop() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event loop failed: %v", r)
		}
	}()
	d.events.EventLoop()
	return nil
}

func (d *Daemon) dispatch(a geometry.Action) {
	if a.Kind == geometry.Exit {
		d.logger.Info("exit hotkey pressed")
		d.exitRequested = true
		d.events.Quit()
		return
	}
	d.actions.Handle(a)
}
