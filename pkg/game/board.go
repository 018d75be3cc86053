package game

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// Largest supported board edge
const MaxSize = 11

const maxCells = MaxSize * MaxSize

// Board is a plain value, copying it gives an independent snapshot.
// Cells are stored row-major with a stride equal to the board size,
// the empty set is tracked incrementally as a bitset.
type Board struct {
	cells [maxCells]Piece
	empty [2]uint64
	size  int
}

func SupportedSize(size int) bool {
	switch size {
	case 3, 5, 9, 11:
		return true
	}
	return false
}

func NewBoard(size int) (*Board, error) {
	if !SupportedSize(size) {
		return nil, errors.Wrapf(ErrUnsupportedSize, "size %d", size)
	}
	b := &Board{size: size}
	b.Reset()
	return b, nil
}

// Build a board from the 0/1/2 wire representation
func FromCells(cells [][]int) (*Board, error) {
	b, err := NewBoard(len(cells))
	if err != nil {
		return nil, err
	}

	for row := range cells {
		if len(cells[row]) != b.size {
			return nil, errors.Wrapf(ErrIllegalPosition, "row %d has %d cells, want %d", row, len(cells[row]), b.size)
		}
		for col, v := range cells[row] {
			p, err := PieceFromWire(v)
			if err != nil {
				return nil, errors.WithMessagef(err, "cell (%d,%d)", row, col)
			}
			if p != Empty {
				b.MakeMove(row, col, p)
			}
		}
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

// Win length of this board, see WinLength
func (b *Board) WinLength() int {
	return WinLength(b.size)
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

func (b *Board) setEmpty(i int, empty bool) {
	if empty {
		b.empty[i>>6] |= 1 << (i & 63)
	} else {
		b.empty[i>>6] &^= 1 << (i & 63)
	}
}

// Place 'player' on (row, col), fails without mutation if the cell
// is out of range or already occupied
func (b *Board) MakeMove(row, col int, player Piece) bool {
	if player != Human && player != AI {
		return false
	}
	if !b.InBounds(row, col) {
		return false
	}

	i := b.index(row, col)
	if b.cells[i] != Empty {
		return false
	}

	b.cells[i] = player
	b.setEmpty(i, false)
	return true
}

// Clear an occupied cell, returns false if there was nothing to undo
func (b *Board) UndoMove(row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}

	i := b.index(row, col)
	if b.cells[i] == Empty {
		return false
	}

	b.cells[i] = Empty
	b.setEmpty(i, true)
	return true
}

// Empty cells in row-major order, recomputed from the grid
func (b *Board) EmptyCells() []Coord {
	cells := make([]Coord, 0, b.size*b.size)
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.cells[b.index(row, col)] == Empty {
				cells = append(cells, Coord{row, col})
			}
		}
	}
	return cells
}

// Empty cells as seen by the incrementally tracked set, in row-major order
func (b *Board) TrackedEmpty() []Coord {
	cells := make([]Coord, 0, b.EmptyCount())
	for w := range b.empty {
		set := b.empty[w]
		for set != 0 {
			i := w<<6 + bits.TrailingZeros64(set)
			cells = append(cells, Coord{i / b.size, i % b.size})
			set &= set - 1
		}
	}
	return cells
}

func (b *Board) EmptyCount() int {
	return bits.OnesCount64(b.empty[0]) + bits.OnesCount64(b.empty[1])
}

func (b *Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.cells[b.index(row, col)] == Empty
}

func (b *Board) IsFull() bool {
	for i := 0; i < b.size*b.size; i++ {
		if b.cells[i] == Empty {
			return false
		}
	}
	return true
}

// Piece on (row, col), Empty when out of range
func (b *Board) CellState(row, col int) Piece {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) Reset() {
	b.cells = [maxCells]Piece{}
	b.empty = [2]uint64{}
	for i := 0; i < b.size*b.size; i++ {
		b.setEmpty(i, true)
	}
}

// Wire snapshot of the grid
func (b *Board) Cells() [][]int {
	cells := make([][]int, b.size)
	for row := range cells {
		cells[row] = make([]int, b.size)
		for col := range cells[row] {
			cells[row][col] = b.cells[b.index(row, col)].Wire()
		}
	}
	return cells
}

func (b *Board) String() string {
	builder := strings.Builder{}
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				builder.WriteByte(' ')
			}
			builder.WriteString(b.cells[b.index(row, col)].String())
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
