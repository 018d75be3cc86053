package game

type Termination int

const (
	TerminationNone     Termination = 0
	TerminationHumanWon Termination = 1
	TerminationAIWon    Termination = 2
	TerminationDraw     Termination = 4
)

func (t Termination) String() string {
	switch t {
	case TerminationNone:
		return "none"
	case TerminationHumanWon:
		return "human-won"
	case TerminationAIWon:
		return "ai-won"
	case TerminationDraw:
		return "draw"
	}
	return "unknown"
}

func wonBy(p Piece) Termination {
	if p == Human {
		return TerminationHumanWon
	}
	return TerminationAIWon
}

// Scan every window of the board, returns true if any is fully owned by 'player'
func (s *State) CheckWin(player Piece) bool {
	for _, window := range Windows(s.board.size) {
		if s.board.windowOwnedBy(window, player) {
			return true
		}
	}
	return false
}

// Board full and nobody won
func (s *State) CheckDraw() bool {
	return s.board.IsFull() && !s.CheckWin(Human) && !s.CheckWin(AI)
}

// Cells of the first completed window, nil if nobody has won
func (s *State) WinningLine() []Coord {
	for _, window := range Windows(s.board.size) {
		first := s.board.cells[window[0]]
		if first == Empty || !s.board.windowOwnedBy(window, first) {
			continue
		}

		line := make([]Coord, len(window))
		for i, idx := range window {
			line[i] = Coord{idx / s.board.size, idx % s.board.size}
		}
		return line
	}
	return nil
}

// Evaluate termination of the current board, 'last' is the player who moved last
// and is checked first
func (s *State) evaluateTermination(last Piece) {
	switch {
	case s.CheckWin(last):
		s.termination = wonBy(last)
	case s.CheckWin(last.Opponent()):
		s.termination = wonBy(last.Opponent())
	case s.board.IsFull():
		s.termination = TerminationDraw
	default:
		s.termination = TerminationNone
	}
}
