package minimax

import (
	"math/rand"

	"github.com/IlikeChooros/go-inarow/pkg/game"
)

var easyWeights = [...]int{1, 2, 2, 2, 2}

// Pick one of the scored moves (sorted best first) according to the difficulty:
// hard always plays the best move, medium plays it 90% of the time and
// otherwise one of the 2nd-4th best, easy plays it 70% of the time and otherwise
// draws from the top five with weights 1,2,2,2,2.
func ChooseMove(moves []ScoredMove, difficulty game.Difficulty, r *rand.Rand) game.Coord {
	last := len(moves) - 1
	if difficulty == game.Hard || len(moves) <= 2 {
		return moves[0].Move
	}

	switch difficulty {
	case game.Medium:
		if r.Float64() < 0.9 {
			return moves[0].Move
		}
		return moves[1+r.Intn(min(3, last))].Move
	default:
		if r.Float64() < 0.7 {
			return moves[0].Move
		}
		return moves[weightedIndex(easyWeights[:min(4, last)+1], r)].Move
	}
}

func weightedIndex(weights []int, r *rand.Rand) int {
	total := 0
	for _, w := range weights {
		total += w
	}

	n := r.Intn(total)
	for i, w := range weights {
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
