package core

import (
	"context"

	"github.com/rootfind/rootfind/internal/engine"
	"github.com/rootfind/rootfind/internal/functions"
	"github.com/rootfind/rootfind/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Result = engine.Result
type RootRecord = types.RootRecord
type Status = types.Status

const (
	StatusConverged     = types.StatusConverged
	StatusMaxIterations = types.StatusMaxIterations
)

// FindRoots is the stable entrypoint for other programs.
func FindRoots(ctx context.Context, cfg Config) (Result, error) {
	return engine.Run(ctx, cfg)
}

// ConfigFor returns the default configuration for a catalog function
// such as "j0" or "sin".
func ConfigFor(name string) (Config, error) {
	e, err := functions.Lookup(name)
	if err != nil {
		return Config{}, err
	}
	return engine.ForFunction(e), nil
}

// Functions returns the names of the built-in target functions.
func Functions() []string { return functions.Names() }
