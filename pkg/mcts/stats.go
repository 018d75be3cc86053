package mcts

// visit count and compounded outcomes of a node
type NodeStats struct {
	q uint64 // float64 value of compounded outcomes for this node with 10^-3 precision
	n int32
}

// Average outcome for this node
func (stats *NodeStats) AvgQ() Result {
	if stats.n == 0 {
		return 0
	}
	return Result(stats.q) / 1e3 / Result(stats.n)
}

// Cumulated rewards/outcomes for this node
func (stats *NodeStats) Q() Result {
	return Result(stats.q) / 1e3
}

// Raw cumulated rewards/outcomes for this node, with 10^-3 precision
func (stats *NodeStats) RawQ() uint64 {
	return stats.q
}

// Add new outcome to this node
func (stats *NodeStats) AddQ(result Result) {
	stats.q += uint64(result * 1e3)
}

// Get number of visits to this node
func (stats *NodeStats) N() int32 {
	return stats.n
}

// Count a visit and its outcome
func (stats *NodeStats) Visit(result Result) {
	stats.n++
	stats.AddQ(result)
}
