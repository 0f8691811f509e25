package silo

import "go.uber.org/zap"

// Config holds process-wide defaults for constructs this package builds,
// mirroring the teacher's package-level Config singleton (config.go) but
// generalized past just table events: a logger every ambient log call in
// this module writes through, and the worker count Engine falls back to
// when a caller does not pick one explicitly.
var Config = config{
	logger:           zap.NewNop(),
	defaultWorkers:   4,
	defaultCacheSize: 256,
}

type config struct {
	logger           *zap.Logger
	defaultWorkers   int
	defaultCacheSize int
}

// SetLogger replaces the package-wide zap.Logger. Engines, Worlds, and
// worker pools read Config's logger at each log call, so every one of them,
// including those constructed before this call, logs through logger from
// now on.
func (c *config) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// SetDefaultWorkers changes how many goroutines a new Engine's worker pool
// spins up when NewEngine is called without an explicit worker count.
func (c *config) SetDefaultWorkers(n int) {
	if n < 1 {
		n = 1
	}
	c.defaultWorkers = n
}

// SetDefaultCacheSize changes how many distinct query keys a new ViewCache
// built through Factory can hold before GetOrCompute stops memoizing new
// keys.
func (c *config) SetDefaultCacheSize(n int) {
	if n < 1 {
		n = 1
	}
	c.defaultCacheSize = n
}
