package mcts

import "math"

type UCB1 struct {
	ExplorationParam float64
}

func NewUCB1(explorationParam float64) *UCB1 {
	return &UCB1{ExplorationParam: max(0, explorationParam)}
}

func (u *UCB1) SetExplorationParam(c float64) {
	u.ExplorationParam = max(0, c)
}

// Pick the child with the highest UCB1 score, unvisited children first,
// ties go to the earlier child
func (u *UCB1) Select(tree *MCTS, parent int32) int32 {
	node := tree.Node(parent)
	if node == nil || node.Terminal() {
		return NoNode
	}

	best := NoNode
	bestScore := math.Inf(-1)
	lnParentVisits := math.Log(float64(node.Stats.N()))

	for _, h := range node.Children {
		child := tree.Node(h)
		visits := float64(child.Stats.N())

		// Pick the unvisited one
		if visits == 0 {
			return h
		}

		// UCB 1 : wins/visits + C * sqrt(ln(parent_visits)/visits)
		score := float64(child.Stats.Q())/visits +
			u.ExplorationParam*math.Sqrt(lnParentVisits/visits)

		if score > bestScore {
			bestScore = score
			best = h
		}
	}

	return best
}
