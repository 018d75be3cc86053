package mcts

import (
	"fmt"

	"github.com/IlikeChooros/go-inarow/pkg/game"
)

const (
	ExpandedMask uint32 = 2
	TerminalMask uint32 = 4
)

// Node of the search tree. Nodes live in the tree's arena and refer to each
// other by handle, every node keeps its own copy of the position.
type Node struct {
	Stats    NodeStats
	Move     game.Coord // move that produced this node
	Parent   int32
	Children []int32
	Flags    uint32

	state   game.State
	mover   game.Piece // player who played 'Move'
	untried []game.Coord
}

func newNode(state game.State, parent int32, move game.Coord, mover game.Piece) Node {
	node := Node{
		Move:   move,
		Parent: parent,
		Flags:  TerminalFlag(state.IsGameOver()),
		state:  state,
		mover:  mover,
	}
	if !node.Terminal() {
		node.untried = state.Board().EmptyCells()
	}
	return node
}

func TerminalFlag(terminal bool) uint32 {
	flag := uint32(0)
	if terminal {
		flag |= TerminalMask
	}
	return flag
}

// Reads the game Flags, and return wheter the node is terminal
func (node *Node) Terminal() bool {
	return node.Flags&TerminalMask == TerminalMask
}

// Every move of this node has a child
func (node *Node) Expanded() bool {
	return node.Flags&ExpandedMask == ExpandedMask
}

// Whether there are still moves without a child
func (node *Node) CanExpand() bool {
	return !node.Terminal() && len(node.untried) > 0
}

// Player who made the move into this node
func (node *Node) Mover() game.Piece {
	return node.mover
}

// Copy of the position of this node
func (node *Node) State() game.State {
	return node.state
}

func (node *Node) Untried() int {
	return len(node.untried)
}

func (node *Node) String() string {
	return fmt.Sprintf("{move=%v mover=%v n=%d q=%.3f children=%d untried=%d}",
		node.Move, node.mover, node.Stats.N(), node.Stats.Q(), len(node.Children), len(node.untried))
}
