package core

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new engines.
type Builder struct {
	logger *slog.Logger
	hooks  []sim.Hook
}

// NewBuilder returns a builder that logs through the default slog logger.
func NewBuilder() Builder {
	return Builder{}
}

// WithLogger sets the logger that receives diagnostics.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// WithHook attaches a hook to the engine.
func (b Builder) WithHook(hook sim.Hook) Builder {
	if hook == nil {
		panic("hook must not be nil")
	}

	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hook)

	return b
}

// Build creates an engine.
func (b Builder) Build(name string) *Engine {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		name:   name,
		logger: logger,
		emu:    instEmulator{logger: logger},
	}

	for _, h := range b.hooks {
		e.AcceptHook(h)
	}

	return e
}
