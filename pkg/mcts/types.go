package mcts

import "github.com/IlikeChooros/go-inarow/pkg/game"

// Other types, which didn't fit to MCTS or Node files

// Result of the playout for a single node, ranges from [0, 1] - 0 being a loss
// for the player who moved into the node and 1 being a win
type Result float64
type BestChildPolicy int
type SeedGeneratorFnType func() int64

// Will be called while descending the tree, should return the handle of the most
// promising child of 'parent', or NoNode if there is none
type SelectionPolicy interface {
	Select(tree *MCTS, parent int32) int32
}

// Final state of a random playout
type Outcome struct {
	Winner game.Piece // Empty on a draw
	Capped bool       // playout hit the ply cap before the game ended
}

func (o Outcome) Draw() bool {
	return !o.Capped && o.Winner == game.Empty
}

// Reward of this outcome for 'player': 1 for a win, 0.5 for a draw and 0 otherwise
func (o Outcome) RewardFor(player game.Piece) Result {
	switch {
	case o.Capped:
		return 0
	case o.Winner == game.Empty:
		return 0.5
	case o.Winner == player:
		return 1
	}
	return 0
}
