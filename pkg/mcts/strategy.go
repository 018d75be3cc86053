package mcts

type StrategyLike interface {
	// Add the outcome of a playout started at 'leaf' to every node up to the root
	Backpropagate(tree *MCTS, leaf int32, outcome Outcome)
}

// Credits every node from the point of view of the player who moved into it,
// so the parent's UCB1 maximises the value for the side that is choosing.
//
// source: https://en.wikipedia.org/wiki/Monte_Carlo_tree_search
// In games where draws are possible, a draw causes the numerator for both
// players to be incremented by 0.5 and the denominator by 1.
type PerspectiveBackprop struct{}

func (PerspectiveBackprop) Backpropagate(tree *MCTS, leaf int32, outcome Outcome) {
	for h := leaf; h != NoNode; {
		node := tree.Node(h)
		node.Stats.Visit(outcome.RewardFor(node.mover))
		h = node.Parent
	}
}

// Credits every node from the root player's point of view, regardless of
// whose turn it is in the node
type RootBackprop struct{}

func (RootBackprop) Backpropagate(tree *MCTS, leaf int32, outcome Outcome) {
	player := tree.RootPlayer()
	for h := leaf; h != NoNode; {
		node := tree.Node(h)
		node.Stats.Visit(outcome.RewardFor(player))
		h = node.Parent
	}
}

// Strategy by name: "perspective" (default) or "root"
func StrategyByName(name string) (StrategyLike, bool) {
	switch name {
	case "", "perspective":
		return PerspectiveBackprop{}, true
	case "root":
		return RootBackprop{}, true
	}
	return nil, false
}

