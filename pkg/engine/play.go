package engine

import (
	"math/rand"
	"time"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/rs/zerolog/log"
)

type PlayResult struct {
	Move     game.Coord
	Fallback bool // the engine's move was unusable, a random empty cell was played instead
	Duration time.Duration
}

// Ask the engine for a move and apply it. An engine error or a move that is
// not on an empty cell is replaced by a uniformly random empty cell, so a
// game always progresses while it is not over.
func Play(state *game.State, eng Engine, r *rand.Rand) (PlayResult, error) {
	if state.IsGameOver() {
		return PlayResult{}, game.ErrGameOver
	}

	empty := state.Board().EmptyCells()
	if len(empty) == 0 {
		return PlayResult{}, ErrNoMoves
	}

	start := time.Now()
	move, err := eng.SelectMove(state)
	result := PlayResult{Move: move, Duration: time.Since(start)}

	if err != nil || !state.Board().IsEmpty(move.Row, move.Col) {
		result.Move = empty[r.Intn(len(empty))]
		result.Fallback = true
		log.Warn().
			Err(err).
			Str("engine", eng.Name()).
			Stringer("move", move).
			Stringer("fallback", result.Move).
			Msg("engine move rejected")
	}

	state.ApplyMove(result.Move.Row, result.Move.Col)
	return result, nil
}
