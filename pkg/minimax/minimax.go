package minimax

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	WinScore  = 100
	LossScore = -100
)

var ErrNoMoves = errors.New("minimax: no empty cells")

type ScoredMove struct {
	Move  game.Coord
	Score int
}

// Depth-limited minimax with alpha-beta pruning. The searcher explores on the
// caller's board with make/undo, so the board is left as it was found.
type Searcher struct {
	MaxDepth   int
	Difficulty game.Difficulty

	rand  *rand.Rand
	me    game.Piece
	state *game.State
	nodes int
}

func NewSearcher(difficulty game.Difficulty) *Searcher {
	return &Searcher{
		MaxDepth:   difficulty.DefaultDepth(),
		Difficulty: difficulty,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Searcher) SetMaxDepth(depth int) *Searcher {
	s.MaxDepth = max(depth, 0)
	return s
}

func (s *Searcher) SetRand(r *rand.Rand) *Searcher {
	if r != nil {
		s.rand = r
	}
	return s
}

// Positions visited by the last search
func (s *Searcher) Nodes() int {
	return s.nodes
}

// Pick a move for the side to move, applying the difficulty-weighted choice
// over the scored root moves
func (s *Searcher) SelectMove(state *game.State) (game.Coord, error) {
	moves, err := s.ScoreMoves(state)
	if err != nil {
		return game.Coord{}, err
	}

	move := ChooseMove(moves, s.Difficulty, s.rand)
	log.Debug().
		Str("difficulty", s.Difficulty.String()).
		Int("depth", s.MaxDepth).
		Int("nodes", s.nodes).
		Int("best", moves[0].Score).
		Stringer("move", move).
		Msg("minimax move")
	return move, nil
}

// Score every empty cell for the side to move, sorted best first.
// Equal scores keep row-major order.
func (s *Searcher) ScoreMoves(state *game.State) ([]ScoredMove, error) {
	board := state.Board()
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return nil, ErrNoMoves
	}

	s.state = state
	s.me = state.CurrentPlayer()
	s.nodes = 0
	defer func() { s.state = nil }()

	moves := make([]ScoredMove, 0, len(empty))
	alpha, beta := math.MinInt, math.MaxInt

	for _, c := range empty {
		score := s.with(c, s.me, func() int {
			return s.minimax(0, false, alpha, beta)
		})
		moves = append(moves, ScoredMove{Move: c, Score: score})
		alpha = max(alpha, score)
	}

	slices.SortStableFunc(moves, func(a, b ScoredMove) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return moves, nil
}

// Place 'piece' on 'c', run 'f' and take the piece back, whatever 'f' does
func (s *Searcher) with(c game.Coord, piece game.Piece, f func() int) int {
	board := s.state.Board()
	board.MakeMove(c.Row, c.Col, piece)
	defer board.UndoMove(c.Row, c.Col)
	return f()
}

func (s *Searcher) minimax(depth int, maximizing bool, alpha, beta int) int {
	s.nodes++

	switch {
	case s.state.CheckWin(s.me):
		return WinScore - depth
	case s.state.CheckWin(s.me.Opponent()):
		return LossScore + depth
	case s.state.Board().IsFull():
		return 0
	case depth >= s.MaxDepth:
		return Evaluate(s.state.Board(), s.me)
	}

	empty := s.state.Board().EmptyCells()

	if maximizing {
		best := math.MinInt
		for _, c := range empty {
			score := s.with(c, s.me, func() int {
				return s.minimax(depth+1, false, alpha, beta)
			})
			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, c := range empty {
		score := s.with(c, s.me.Opponent(), func() int {
			return s.minimax(depth+1, true, alpha, beta)
		})
		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
