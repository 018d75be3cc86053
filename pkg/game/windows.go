package game

import "sync"

// Number of contiguous cells needed to win on a board of given size.
// 3x3 plays three in a row, 5x5 uses the full edge, bigger boards play five in a row.
// Both the rules and the heuristic evaluator read this table.
func WinLength(size int) int {
	switch size {
	case 3:
		return 3
	case 5:
		return 5
	}
	return 5
}

// line directions: horizontal, vertical, diagonal, anti-diagonal
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}

type windowTable struct {
	length  int
	windows [][]int // flat cell indices, 'length' per window
}

var windowStore = struct {
	sync.Mutex
	tables map[int]*windowTable
}{tables: make(map[int]*windowTable)}

// Windows of a board with given size, computed once and shared afterwards,
// callers must not modify the returned slices
func Windows(size int) [][]int {
	windowStore.Lock()
	defer windowStore.Unlock()

	if t, ok := windowStore.tables[size]; ok {
		return t.windows
	}

	t := buildWindows(size)
	windowStore.tables[size] = t
	return t.windows
}

func buildWindows(size int) *windowTable {
	length := WinLength(size)
	t := &windowTable{length: length}
	if length > size {
		return t
	}

	for _, dir := range directions {
		dr, dc := dir[0], dir[1]
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				endRow := row + dr*(length-1)
				endCol := col + dc*(length-1)
				if endRow < 0 || endRow >= size || endCol < 0 || endCol >= size {
					continue
				}

				window := make([]int, length)
				for i := range length {
					window[i] = (row+dr*i)*size + col + dc*i
				}
				t.windows = append(t.windows, window)
			}
		}
	}
	return t
}

// Count pieces of every kind inside a window
func (b *Board) CountWindow(window []int) (human, ai, empty int) {
	for _, i := range window {
		switch b.cells[i] {
		case Human:
			human++
		case AI:
			ai++
		case Empty:
			empty++
		}
	}
	return human, ai, empty
}

func (b *Board) windowOwnedBy(window []int, player Piece) bool {
	for _, i := range window {
		if b.cells[i] != player {
			return false
		}
	}
	return true
}
