package engine

import (
	"encoding/json"
	"os"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/IlikeChooros/go-inarow/pkg/mcts"
	"github.com/pkg/errors"
)

// Config of a single engine. Zero values fall back to the difficulty's
// defaults.
type Config struct {
	Engine      string          `json:"engine"`
	Difficulty  game.Difficulty `json:"difficulty"`
	MaxDepth    int             `json:"max_depth,omitempty"`
	Iterations  uint32          `json:"iterations,omitempty"`
	MovetimeMs  int             `json:"movetime_ms,omitempty"`
	Exploration float64         `json:"exploration,omitempty"`
	Backprop    string          `json:"backprop,omitempty"`
	BestChild   string          `json:"best_child,omitempty"`
	MbSize      int             `json:"mb_size,omitempty"`
	Seed        int64           `json:"seed,omitempty"`
}

func DefaultConfig(name string) Config {
	return Config{
		Engine:     name,
		Difficulty: game.Medium,
	}
}

// Read a JSON config file, fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig(MinimaxName)

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read engine config %s", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse engine config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Engine == "":
		return errors.Wrap(ErrInvalidConfig, "missing engine name")
	case c.Difficulty > game.Hard:
		return errors.Wrapf(ErrInvalidConfig, "difficulty %d", uint8(c.Difficulty))
	case c.MaxDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_depth=%d", c.MaxDepth)
	case c.MovetimeMs < 0:
		return errors.Wrapf(ErrInvalidConfig, "movetime_ms=%d", c.MovetimeMs)
	case c.Exploration < 0:
		return errors.Wrapf(ErrInvalidConfig, "exploration=%g", c.Exploration)
	case c.MbSize < 0:
		return errors.Wrapf(ErrInvalidConfig, "mb_size=%d", c.MbSize)
	}
	if _, ok := mcts.StrategyByName(c.Backprop); !ok {
		return errors.Wrapf(ErrInvalidConfig, "backprop=%q", c.Backprop)
	}
	if _, ok := mcts.BestChildPolicyByName(c.BestChild); !ok {
		return errors.Wrapf(ErrInvalidConfig, "best_child=%q", c.BestChild)
	}
	return nil
}

func (c Config) String() string {
	data, _ := json.Marshal(c)
	return string(data)
}
