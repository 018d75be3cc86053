package minimax

import "github.com/IlikeChooros/go-inarow/pkg/game"

const (
	scoreOneAway   = 50
	scoreGood      = 10
	scorePotential = 5
)

// Static evaluation of the board from the perspective of 'me',
// the sum of every window score
func Evaluate(board *game.Board, me game.Piece) int {
	length := board.WinLength()
	score := 0
	for _, window := range game.Windows(board.Size()) {
		human, ai, empty := board.CountWindow(window)
		mine, theirs := ai, human
		if me == game.Human {
			mine, theirs = human, ai
		}
		score += windowScore(mine, empty, length) - windowScore(theirs, empty, length)
	}
	return score
}

// Score of a window holding 'count' pieces of one side next to 'empty' free cells
func windowScore(count, empty, length int) int {
	switch {
	case count == length-1 && empty == 1:
		return scoreOneAway
	case count == length-2 && empty == 2:
		return scoreGood
	case length >= 4 && count == length-3 && empty == 3:
		return scorePotential
	}
	return 0
}
