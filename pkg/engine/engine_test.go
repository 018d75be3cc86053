package engine

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/IlikeChooros/go-inarow/pkg/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	mcts.SetSeedGeneratorFn(func() int64 {
		return 42
	})
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func stateFrom(t *testing.T, cells [][]int, toMove game.Piece) *game.State {
	t.Helper()
	board, err := game.FromCells(cells)
	require.NoError(t, err)
	state, err := game.FromBoard(board, toMove)
	require.NoError(t, err)
	return state
}

// Always answers with the same move, or an error
type fixedEngine struct {
	move game.Coord
	err  error
}

func (e fixedEngine) SelectMove(*game.State) (game.Coord, error) { return e.move, e.err }
func (e fixedEngine) Name() string { return "fixed" }

func TestNames(t *testing.T) {
	names := Names()
	require.Subset(t, names, []string{MinimaxName, MCTSName, RandomName})
	require.IsIncreasing(t, names)
}

func TestRegister(t *testing.T) {
	Register("fixed", func(cfg Config) (Engine, error) {
		return fixedEngine{move: game.Coord{Row: 1, Col: 1}}, nil
	})
	Register("broken", func(cfg Config) (Engine, error) {
		return nil, errors.New("out of order")
	})

	eng, err := New(DefaultConfig("fixed"))
	require.NoError(t, err)
	require.Equal(t, "fixed", eng.Name())

	_, err = New(DefaultConfig("broken"))
	require.ErrorContains(t, err, `failed to create engine "broken"`)

	_, err = New(DefaultConfig("nope"))
	require.True(t, errors.Is(err, ErrUnknownEngine), "err=%v", err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig(MCTSName).Validate())

	broken := []func(*Config){
		func(c *Config) { c.Engine = "" },
		func(c *Config) { c.Difficulty = game.Difficulty(7) },
		func(c *Config) { c.MaxDepth = -1 },
		func(c *Config) { c.MovetimeMs = -5 },
		func(c *Config) { c.Exploration = -0.5 },
		func(c *Config) { c.Backprop = "sideways" },
		func(c *Config) { c.BestChild = "most" },
		func(c *Config) { c.MbSize = -1 },
	}
	for i, f := range broken {
		cfg := DefaultConfig(MCTSName)
		f(&cfg)
		err := cfg.Validate()
		require.True(t, errors.Is(err, ErrInvalidConfig), "case %d: err=%v", i, err)

		_, err = New(cfg)
		require.Error(t, err, "case %d", i)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"engine": "mcts",
		"difficulty": "hard",
		"iterations": 300,
		"backprop": "root",
		"seed": 7
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, Config{
		Engine:     MCTSName,
		Difficulty: game.Hard,
		Iterations: 300,
		Backprop:   "root",
		Seed:       7,
	}, cfg)

	// Missing fields keep their defaults
	path = filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_depth": 2}`), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, MinimaxName, cfg.Engine)
	require.Equal(t, game.Medium, cfg.Difficulty)
	require.Equal(t, 2, cfg.MaxDepth)

	path = filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"difficulty": "impossible"}`), 0o644))
	_, err = LoadConfig(path)
	require.True(t, errors.Is(err, game.ErrUnknownDifficulty), "err=%v", err)

	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	require.True(t, errors.Is(err, os.ErrNotExist), "err=%v", err)
}

func TestBuiltinsTakeTheWin(t *testing.T) {
	configs := []Config{DefaultConfig(MinimaxName), DefaultConfig(MCTSName), DefaultConfig(MCTSName)}
	configs[0].Difficulty = game.Hard
	configs[1].Iterations = 1000
	configs[1].Seed = 11
	configs[2].Iterations = 1000
	configs[2].BestChild = "winrate"

	for _, cfg := range configs {
		state := stateFrom(t, [][]int{
			{2, 2, 0},
			{1, 1, 0},
			{0, 0, 0},
		}, game.AI)

		eng, err := New(cfg)
		require.NoError(t, err)
		require.Equal(t, cfg.Engine, eng.Name())

		move, err := eng.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, game.Coord{Row: 0, Col: 2}, move, cfg.Engine)

		// The searched state is left untouched
		require.Equal(t, 5, state.Board().EmptyCount())
		require.Equal(t, game.AI, state.CurrentPlayer())
	}
}

func TestBuiltinsNoMoves(t *testing.T) {
	full := [][]int{
		{1, 2, 1},
		{1, 2, 2},
		{2, 1, 1},
	}
	for _, name := range []string{MCTSName, RandomName} {
		eng, err := New(DefaultConfig(name))
		require.NoError(t, err)
		_, err = eng.SelectMove(stateFrom(t, full, game.Human))
		require.True(t, errors.Is(err, ErrNoMoves), "%s: err=%v", name, err)
	}
}

func TestRandomEngineSeeded(t *testing.T) {
	cfg := DefaultConfig(RandomName)
	cfg.Seed = 99

	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)

	state, err := game.NewState(9)
	require.NoError(t, err)
	for range 10 {
		ma, err := a.SelectMove(state)
		require.NoError(t, err)
		mb, err := b.SelectMove(state)
		require.NoError(t, err)
		require.Equal(t, ma, mb)
		require.True(t, state.Board().IsEmpty(ma.Row, ma.Col))
	}
}

func TestPlay(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	state, err := game.NewState(3)
	require.NoError(t, err)

	result, err := Play(state, fixedEngine{move: game.Coord{Row: 1, Col: 1}}, r)
	require.NoError(t, err)
	require.False(t, result.Fallback)
	require.Equal(t, game.Coord{Row: 1, Col: 1}, result.Move)
	require.Equal(t, game.Human, state.Board().CellState(1, 1))
	require.Equal(t, game.AI, state.CurrentPlayer())

	// Occupied, out of range and failing answers are replaced by an empty cell
	answers := []fixedEngine{
		{move: game.Coord{Row: 1, Col: 1}},
		{move: game.Coord{Row: 3, Col: 0}},
		{move: game.Coord{Row: -1, Col: 2}},
		{err: errors.New("no idea")},
	}
	for i, eng := range answers {
		before := state.Board().EmptyCount()
		result, err := Play(state, eng, r)
		require.NoError(t, err, "case %d", i)
		require.True(t, result.Fallback, "case %d", i)
		require.Equal(t, before-1, state.Board().EmptyCount(), "case %d", i)
		require.NotEqual(t, game.Empty, state.Board().CellState(result.Move.Row, result.Move.Col))
	}
}

func TestPlayFinishedGame(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	state := stateFrom(t, [][]int{
		{1, 1, 1},
		{2, 2, 0},
		{0, 0, 0},
	}, game.AI)
	require.True(t, state.IsGameOver())

	_, err := Play(state, fixedEngine{move: game.Coord{Row: 2, Col: 2}}, r)
	require.True(t, errors.Is(err, game.ErrGameOver), "err=%v", err)
	require.True(t, state.Board().IsEmpty(2, 2))
}

func TestPlayFullGames(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, name := range []string{MinimaxName, MCTSName, RandomName} {
		cfg := DefaultConfig(name)
		cfg.Iterations = 200
		cfg.Seed = 5
		eng, err := New(cfg)
		require.NoError(t, err)

		opponent, err := New(DefaultConfig(RandomName))
		require.NoError(t, err)

		state, err := game.NewState(5)
		require.NoError(t, err)
		seats := [2]Engine{eng, opponent}
		for turn := 0; !state.IsGameOver(); turn++ {
			result, err := Play(state, seats[turn%2], r)
			require.NoError(t, err)
			require.False(t, result.Fallback, "%s turn %d", name, turn)
		}
		require.LessOrEqual(t, state.MoveCount(), 25)
	}
}

func TestMCTSConfig(t *testing.T) {
	tree := func(cfg Config) *mcts.MCTS {
		t.Helper()
		eng, err := New(cfg)
		require.NoError(t, err)
		searcher, ok := eng.(*mctsEngine)
		require.True(t, ok)
		return searcher.Tree()
	}

	cfg := DefaultConfig(MCTSName)
	cfg.Difficulty = game.Hard
	require.Equal(t, mcts.LimitsFor(game.Hard), tree(cfg).Limits())

	// Configured budgets replace only their own part of the difficulty budget
	cfg.Iterations = 5000
	limits := tree(cfg).Limits()
	require.Equal(t, uint32(5000), limits.Cycles)
	require.Equal(t, 2000, limits.Movetime)

	cfg = DefaultConfig(MCTSName)
	cfg.Difficulty = game.Easy
	cfg.MovetimeMs = 50
	cfg.MbSize = 4
	limits = tree(cfg).Limits()
	require.Equal(t, uint32(200), limits.Cycles)
	require.Equal(t, 50, limits.Movetime)
	require.Equal(t, int64(4<<20), limits.ByteSize)
	require.False(t, limits.InfiniteSize())

	cfg = DefaultConfig(MCTSName)
	cfg.Exploration = 0.3
	cfg.BestChild = "winrate"
	searcher := tree(cfg)
	policy, ok := searcher.Policy().(*mcts.UCB1)
	require.True(t, ok)
	require.Equal(t, 0.3, policy.ExplorationParam)
	require.Equal(t, mcts.BestChildWinRate, searcher.BestChildPolicy())

	policy, ok = tree(DefaultConfig(MCTSName)).Policy().(*mcts.UCB1)
	require.True(t, ok)
	require.Equal(t, mcts.ExplorationParam, policy.ExplorationParam)
}
