package game

import "github.com/pkg/errors"

// State owns a board and the turn, win and draw bookkeeping around it.
// It is a value type: assigning it copies the whole position.
type State struct {
	board       Board
	current     Piece
	termination Termination
	moves       int
}

func NewState(size int) (*State, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &State{board: *board, current: Human}, nil
}

// Build a state from an existing board, with 'toMove' being the side to play.
// The board is copied.
func FromBoard(board *Board, toMove Piece) (*State, error) {
	if toMove != Human && toMove != AI {
		return nil, errors.Wrapf(ErrInvalidPiece, "side to move %v", toMove)
	}

	s := &State{
		board:   *board,
		current: toMove,
		moves:   board.size*board.size - board.EmptyCount(),
	}
	if s.CheckWin(Human) && s.CheckWin(AI) {
		return nil, errors.Wrap(ErrIllegalPosition, "both players have a winning line")
	}
	s.evaluateTermination(toMove.Opponent())
	return s, nil
}

// Mutable access to the board, used by searches exploring with make/undo
func (s *State) Board() *Board {
	return &s.board
}

func (s *State) Size() int {
	return s.board.size
}

func (s *State) CurrentPlayer() Piece {
	return s.current
}

func (s *State) MoveCount() int {
	return s.moves
}

func (s *State) Termination() Termination {
	return s.termination
}

func (s *State) IsGameOver() bool {
	return s.termination != TerminationNone
}

// Winner of the game: (Human|AI, true) after a win, (Empty, true) after a draw,
// (Empty, false) while the game is still running
func (s *State) Winner() (Piece, bool) {
	switch s.termination {
	case TerminationHumanWon:
		return Human, true
	case TerminationAIWon:
		return AI, true
	case TerminationDraw:
		return Empty, true
	}
	return Empty, false
}

// Play the current player's piece on (row, col). Fails if the game is over
// or the move is illegal, otherwise evaluates the result and passes the turn.
func (s *State) ApplyMove(row, col int) bool {
	if s.IsGameOver() {
		return false
	}
	if !s.board.MakeMove(row, col, s.current) {
		return false
	}

	s.moves++
	s.evaluateTermination(s.current)
	if !s.IsGameOver() {
		s.current = s.current.Opponent()
	}
	return true
}

func (s *State) Reset() {
	s.board.Reset()
	s.current = Human
	s.termination = TerminationNone
	s.moves = 0
}

func (s *State) Clone() *State {
	clone := *s
	return &clone
}

func (s *State) String() string {
	return s.board.String()
}
