package game

import (
	"fmt"

	"github.com/pkg/errors"
)

type Piece uint8

const (
	Empty Piece = 0
	Human Piece = 1
	AI    Piece = 2
)

var (
	ErrUnsupportedSize = errors.New("game: unsupported board size")
	ErrInvalidPiece    = errors.New("game: invalid piece")
	ErrIllegalPosition = errors.New("game: illegal position")
	ErrGameOver        = errors.New("game: game is over")
)

// Opponent of the player, Empty stays Empty
func (p Piece) Opponent() Piece {
	switch p {
	case Human:
		return AI
	case AI:
		return Human
	}
	return Empty
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "."
	case Human:
		return "X"
	case AI:
		return "O"
	}
	return fmt.Sprintf("Piece(%d)", uint8(p))
}

// Wire value of the piece: 0 empty, 1 human, 2 ai
func (p Piece) Wire() int {
	return int(p)
}

func PieceFromWire(v int) (Piece, error) {
	switch v {
	case 0:
		return Empty, nil
	case 1:
		return Human, nil
	case 2:
		return AI, nil
	}
	return Empty, errors.Wrapf(ErrInvalidPiece, "wire value %d", v)
}

type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
