// Package engine puts the move-picking searchers behind one contract and
// builds them by name from a configuration.
package engine

import (
	"sort"
	"sync"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/pkg/errors"
)

// Engine picks a move for the side to move in a position.
type Engine interface {
	// SelectMove may search on 'state' but must leave it as it was found.
	SelectMove(state *game.State) (game.Coord, error)
	Name() string
}

// Factory builds an engine from its configuration, called once per seat.
type Factory func(cfg Config) (Engine, error)

var (
	ErrUnknownEngine = errors.New("engine: unknown engine")
	ErrInvalidConfig = errors.New("engine: invalid configuration")
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register a factory under 'name', replacing a previous registration.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Registered engine names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New validates the configuration and builds the engine it names.
func New(cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := registry[cfg.Engine]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", cfg.Engine)
	}

	eng, err := factory(cfg)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create engine %q", cfg.Engine)
	}
	return eng, nil
}

func init() {
	Register(MinimaxName, newMinimaxEngine)
	Register(MCTSName, newMCTSEngine)
	Register(RandomName, newRandomEngine)
}
