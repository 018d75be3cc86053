package minimax

import (
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
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

func emptyState(t *testing.T, size int, toMove game.Piece) *game.State {
	t.Helper()
	board, err := game.NewBoard(size)
	require.NoError(t, err)
	state, err := game.FromBoard(board, toMove)
	require.NoError(t, err)
	return state
}

func TestOpeningMove(t *testing.T) {
	state := emptyState(t, 3, game.AI)
	searcher := NewSearcher(game.Hard).SetMaxDepth(5)

	move, err := searcher.SelectMove(state)
	require.NoError(t, err)

	corners := []game.Coord{{0, 0}, {0, 2}, {2, 0}, {2, 2}, {1, 1}}
	require.Contains(t, corners, move, "opening move must be a corner or the center")
	require.Greater(t, searcher.Nodes(), 0)
}

func TestCompletesRow(t *testing.T) {
	state := stateFrom(t, [][]int{
		{2, 2, 0},
		{1, 1, 0},
		{0, 0, 0},
	}, game.AI)

	searcher := NewSearcher(game.Hard)
	moves, err := searcher.ScoreMoves(state)
	require.NoError(t, err)
	require.Equal(t, game.Coord{Row: 0, Col: 2}, moves[0].Move)
	require.Equal(t, WinScore, moves[0].Score)

	move, err := searcher.SelectMove(state)
	require.NoError(t, err)
	require.Equal(t, game.Coord{Row: 0, Col: 2}, move)
}

func TestBlocksOpponent(t *testing.T) {
	state := stateFrom(t, [][]int{
		{1, 1, 0},
		{0, 2, 0},
		{0, 0, 0},
	}, game.AI)

	move, err := NewSearcher(game.Hard).SetMaxDepth(3).SelectMove(state)
	require.NoError(t, err)
	require.Equal(t, game.Coord{Row: 0, Col: 2}, move)
}

func TestPlaysEitherSeat(t *testing.T) {
	// same position with the roles swapped, human to move must win the same way
	state := stateFrom(t, [][]int{
		{1, 1, 0},
		{2, 2, 0},
		{0, 0, 0},
	}, game.Human)

	move, err := NewSearcher(game.Hard).SelectMove(state)
	require.NoError(t, err)
	require.Equal(t, game.Coord{Row: 0, Col: 2}, move)
}

func TestTerminalScore(t *testing.T) {
	state := stateFrom(t, [][]int{
		{2, 2, 0},
		{1, 1, 0},
		{0, 0, 0},
	}, game.AI)

	s := NewSearcher(game.Hard)
	s.state = state
	s.me = game.AI

	for depth := 0; depth < 4; depth++ {
		score := s.with(game.Coord{Row: 0, Col: 2}, game.AI, func() int {
			return s.minimax(depth, false, math.MinInt, math.MaxInt)
		})
		require.Equal(t, WinScore-depth, score)
	}

	score := s.with(game.Coord{Row: 1, Col: 2}, game.Human, func() int {
		return s.minimax(2, true, math.MinInt, math.MaxInt)
	})
	require.Equal(t, LossScore+2, score)
}

func TestBoardUntouched(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, size := range []int{3, 5, 9} {
		for i := 0; i < 10; i++ {
			state, err := game.NewState(size)
			require.NoError(t, err)

			plies := r.Intn(size * 2)
			for p := 0; p < plies && !state.IsGameOver(); p++ {
				empty := state.Board().EmptyCells()
				m := empty[r.Intn(len(empty))]
				require.True(t, state.ApplyMove(m.Row, m.Col))
			}
			if state.IsGameOver() {
				continue
			}

			before := *state
			depth := map[int]int{3: 5, 5: 2, 9: 1}[size]
			move, err := NewSearcher(game.Medium).SetMaxDepth(depth).SetRand(r).SelectMove(state)
			require.NoError(t, err)

			require.Equal(t, before, *state, "board changed by the search")
			require.True(t, state.Board().IsEmpty(move.Row, move.Col), "illegal move %v", move)
			require.Equal(t, state.Board().EmptyCells(), state.Board().TrackedEmpty())
		}
	}
}

func TestNoMoves(t *testing.T) {
	state := stateFrom(t, [][]int{
		{1, 2, 1},
		{1, 2, 2},
		{2, 1, 1},
	}, game.AI)

	_, err := NewSearcher(game.Easy).SelectMove(state)
	require.ErrorIs(t, err, ErrNoMoves)
}

func TestEvaluate(t *testing.T) {
	board, err := game.FromCells([][]int{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	// row 0 is one away, column 0, column 1 and the main diagonal hold a single piece
	require.Equal(t, 50+10+10+10, Evaluate(board, game.AI))
	require.Equal(t, -(50 + 10 + 10 + 10), Evaluate(board, game.Human))
}

func TestWindowScore(t *testing.T) {
	tests := []struct {
		count, empty, length int
		want                 int
	}{
		{2, 1, 3, scoreOneAway},
		{1, 2, 3, scoreGood},
		{0, 3, 3, 0},
		{4, 1, 5, scoreOneAway},
		{3, 2, 5, scoreGood},
		{2, 3, 5, scorePotential},
		{2, 2, 5, 0},
		{1, 4, 5, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, windowScore(tt.count, tt.empty, tt.length), "%+v", tt)
	}
}

func scored(n int) []ScoredMove {
	moves := make([]ScoredMove, n)
	for i := range moves {
		moves[i] = ScoredMove{Move: game.Coord{Row: 0, Col: i}, Score: n - i}
	}
	return moves
}

func TestChooseMove(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	const draws = 20000

	t.Run("hard", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			require.Equal(t, 0, ChooseMove(scored(9), game.Hard, r).Col)
		}
	})

	t.Run("short lists", func(t *testing.T) {
		for _, d := range []game.Difficulty{game.Easy, game.Medium} {
			for i := 0; i < 100; i++ {
				require.Equal(t, 0, ChooseMove(scored(2), d, r).Col)
				require.Equal(t, 0, ChooseMove(scored(1), d, r).Col)
			}
		}
	})

	t.Run("medium", func(t *testing.T) {
		counts := make([]int, 9)
		for i := 0; i < draws; i++ {
			counts[ChooseMove(scored(9), game.Medium, r).Col]++
		}
		require.InDelta(t, 0.9, float64(counts[0])/draws, 0.02)
		for i := 1; i <= 3; i++ {
			require.InDelta(t, 0.1/3, float64(counts[i])/draws, 0.01)
		}
		require.Zero(t, counts[4]+counts[5]+counts[6]+counts[7]+counts[8])
	})

	t.Run("easy", func(t *testing.T) {
		counts := make([]int, 9)
		for i := 0; i < draws; i++ {
			counts[ChooseMove(scored(9), game.Easy, r).Col]++
		}
		require.InDelta(t, 0.7+0.3/9, float64(counts[0])/draws, 0.02)
		for i := 1; i <= 4; i++ {
			require.InDelta(t, 0.3*2/9, float64(counts[i])/draws, 0.015)
		}
		require.Zero(t, counts[5]+counts[6]+counts[7]+counts[8])
	})

	t.Run("easy three moves", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			require.Less(t, ChooseMove(scored(3), game.Easy, r).Col, 3)
		}
	})
}
