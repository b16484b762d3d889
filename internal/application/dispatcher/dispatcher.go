// Package dispatcher routes named commands and queries to their handlers.
// Every entry point of the doctoral core is a command object carrying its
// own name; handlers are registered once at startup and invoked by name,
// which keeps the HTTP layer free of per-use-case wiring.
package dispatcher

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/shared"
)

// Command is a named request. Command names follow the business
// vocabulary, e.g. "SoumettreEpreuveConfirmationCommand".
type Command interface {
	CommandName() string
}

// HandlerFunc executes one command and returns its result
type HandlerFunc func(ctx context.Context, cmd Command) (interface{}, error)

// Dispatcher maps command names to handlers
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

// New creates an empty dispatcher
func New(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}
}

// Register binds a command name to a handler; registering the same name
// twice is a programming error surfaced at startup
func (d *Dispatcher) Register(name string, fn HandlerFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.handlers[name]; exists {
		return shared.NewDomainError("HANDLER_CONFLICT", "A handler is already registered for "+name)
	}
	d.handlers[name] = fn
	return nil
}

// MustRegister is Register for startup wiring, panicking on conflicts
func (d *Dispatcher) MustRegister(name string, fn HandlerFunc) {
	if err := d.Register(name, fn); err != nil {
		panic(err)
	}
}

// Invoke executes the handler registered for the command's name
func (d *Dispatcher) Invoke(ctx context.Context, cmd Command) (interface{}, error) {
	d.mu.RLock()
	fn, ok := d.handlers[cmd.CommandName()]
	d.mu.RUnlock()
	if !ok {
		d.logger.Error("no handler for command", zap.String("command", cmd.CommandName()))
		return nil, shared.NewDomainError("UNKNOWN_COMMAND", "No handler registered for "+cmd.CommandName())
	}

	d.logger.Debug("invoking command", zap.String("command", cmd.CommandName()))
	result, err := fn(ctx, cmd)
	if err != nil {
		d.logger.Warn("command failed",
			zap.String("command", cmd.CommandName()),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// Names returns the registered command names, for diagnostics
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	return names
}
