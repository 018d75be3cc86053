package engine

import (
	"math/rand"
	"time"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/IlikeChooros/go-inarow/pkg/mcts"
	"github.com/IlikeChooros/go-inarow/pkg/minimax"
	"github.com/pkg/errors"
)

const (
	MinimaxName = "minimax"
	MCTSName    = "mcts"
	RandomName  = "random"
)

var ErrNoMoves = errors.New("engine: no empty cells")

func configRand(cfg Config) *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type minimaxEngine struct {
	searcher *minimax.Searcher
}

func newMinimaxEngine(cfg Config) (Engine, error) {
	searcher := minimax.NewSearcher(cfg.Difficulty).SetRand(configRand(cfg))
	if cfg.MaxDepth > 0 {
		searcher.SetMaxDepth(cfg.MaxDepth)
	}
	return &minimaxEngine{searcher: searcher}, nil
}

func (e *minimaxEngine) SelectMove(state *game.State) (game.Coord, error) {
	return e.searcher.SelectMove(state)
}

func (e *minimaxEngine) Name() string {
	return MinimaxName
}

type mctsEngine struct {
	tree *mcts.MCTS
}

func newMCTSEngine(cfg Config) (Engine, error) {
	strategy, ok := mcts.StrategyByName(cfg.Backprop)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidConfig, "backprop=%q", cfg.Backprop)
	}

	bestChild, ok := mcts.BestChildPolicyByName(cfg.BestChild)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidConfig, "best_child=%q", cfg.BestChild)
	}

	policy := mcts.NewUCB1(mcts.ExplorationParam)
	if cfg.Exploration > 0 {
		policy.SetExplorationParam(cfg.Exploration)
	}

	tree := mcts.NewMCTS(policy, strategy)
	tree.SetBestChildPolicy(bestChild)
	if cfg.Seed != 0 {
		tree.SetRand(rand.New(rand.NewSource(cfg.Seed)))
	}

	// Configured budgets replace the matching difficulty budget, the search
	// still stops at whichever limit is hit first
	tree.SetDifficulty(cfg.Difficulty)
	limits := tree.Limits()
	if cfg.Iterations > 0 {
		limits.SetCycles(cfg.Iterations)
	}
	if cfg.MovetimeMs > 0 {
		limits.SetMovetime(cfg.MovetimeMs)
	}
	if cfg.MbSize > 0 {
		limits.SetMbSize(cfg.MbSize)
	}
	return &mctsEngine{tree: tree}, nil
}

func (e *mctsEngine) SelectMove(state *game.State) (game.Coord, error) {
	if state.Board().EmptyCount() == 0 {
		return game.Coord{}, ErrNoMoves
	}
	return e.tree.SelectMove(state), nil
}

func (e *mctsEngine) Name() string {
	return MCTSName
}

// Tree behind the engine, for statistics
func (e *mctsEngine) Tree() *mcts.MCTS {
	return e.tree
}

// Uniformly random empty cell, the baseline opponent
type randomEngine struct {
	rand *rand.Rand
}

func newRandomEngine(cfg Config) (Engine, error) {
	return &randomEngine{rand: configRand(cfg)}, nil
}

func (e *randomEngine) SelectMove(state *game.State) (game.Coord, error) {
	empty := state.Board().EmptyCells()
	if len(empty) == 0 {
		return game.Coord{}, ErrNoMoves
	}
	return empty[e.rand.Intn(len(empty))], nil
}

func (e *randomEngine) Name() string {
	return RandomName
}
