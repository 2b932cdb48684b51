package storage

import "pkg.world.dev/tablestore/log"

// Option configures an Engine at creation time.
type Option func(e *Engine)

// WithLogger replaces the engine's logger.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithInitialCapacity sets the entity capacity new tables are created with.
func WithInitialCapacity(n int) Option {
	return func(e *Engine) {
		e.initialCapacity = n
	}
}

// WithRemovalNotifier installs the callback invoked before entity state is
// discarded in bulk (Deinit, DeleteAll, and merges with no destination).
func WithRemovalNotifier(fn RemovalNotifier) Option {
	return func(e *Engine) {
		e.removal = fn
	}
}
