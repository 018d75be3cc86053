package mcts

import "github.com/pkg/errors"

// Descend from 'h' with the selection policy while the node is fully expanded,
// has children and the game is still running. Returns the node and its depth.
func (mcts *MCTS) selection(h int32) (int32, int, error) {
	depth := 0
	for {
		node := mcts.Node(h)
		if node == nil {
			return NoNode, depth, errors.Wrapf(ErrSelection, "invalid handle %d", h)
		}
		if len(node.untried) > 0 || len(node.Children) == 0 || node.Terminal() {
			return h, depth, nil
		}

		next := mcts.policy.Select(mcts, h)
		if mcts.Node(next) == nil {
			return h, depth, errors.Wrapf(ErrSelection, "policy returned %d for node %d", next, h)
		}
		h = next
		depth++
	}
}

// Add a child for a random untried move of 'h'. Returns 'h' itself, when
// there is nothing to expand or the tree can't grow anymore.
func (mcts *MCTS) expansion(h int32) (int32, bool, error) {
	node := &mcts.nodes[h]
	if !node.CanExpand() || !mcts.Limiter.Expand() {
		return h, false, nil
	}

	mover := node.state.CurrentPlayer()
	for len(node.untried) > 0 {
		i := mcts.rand.Intn(len(node.untried))
		move := node.untried[i]
		last := len(node.untried) - 1
		node.untried[i] = node.untried[last]
		node.untried = node.untried[:last]
		if last == 0 {
			node.Flags |= ExpandedMask
		}

		state := node.state
		if !state.ApplyMove(move.Row, move.Col) {
			// stale move, try another one
			continue
		}

		child := int32(len(mcts.nodes))
		mcts.nodes = append(mcts.nodes, newNode(state, h, move, mover))
		// append may have moved the arena
		mcts.nodes[h].Children = append(mcts.nodes[h].Children, child)
		return child, true, nil
	}

	return h, false, errors.Wrapf(ErrExpansion, "node %d has no playable untried move", h)
}

// Play uniformly random moves from the position of 'h' until the game ends,
// or size^2 plies were played
func (mcts *MCTS) simulation(h int32) (Outcome, error) {
	state := mcts.nodes[h].state
	limit := state.Size() * state.Size()

	for plies := 0; !state.IsGameOver(); plies++ {
		if plies >= limit {
			return Outcome{Capped: true}, nil
		}

		empty := state.Board().EmptyCells()
		if len(empty) == 0 {
			return Outcome{}, errors.Wrapf(ErrSimulation, "running game without empty cells at ply %d", plies)
		}

		move := empty[mcts.rand.Intn(len(empty))]
		if !state.ApplyMove(move.Row, move.Col) {
			return Outcome{}, errors.Wrapf(ErrSimulation, "move %v rejected", move)
		}
	}

	winner, _ := state.Winner()
	return Outcome{Winner: winner}, nil
}
