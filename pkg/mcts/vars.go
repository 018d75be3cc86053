package mcts

import "time"

// Handle of a missing node (parent of the root, no child selected)
const NoNode int32 = -1

const rootHandle int32 = 0

// Exploration parameter used in UCB1 formula, higher values increase exploration
// while lower values increase exploitation.
var ExplorationParam float64 = 1.41

// Set the exploration parameter used by searchers created afterwards
func SetExplorationParam(c float64) {
	ExplorationParam = max(0.0, c)
}

// Part of the movetime after which the search stops early and raises the timeout flag
var CheckpointFraction float64 = 0.9

// Number of failing iterations in a row after which the search gives up
var MaxConsecutiveFaults = 64

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for random number generators in MCTS,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

const (
	// When choosing the best child, choose the one with most visits,
	// this is the go-to method for MCTS
	BestChildMostVisits BestChildPolicy = iota

	// Choose the child with the best win rate, among sufficiently visited ones
	BestChildWinRate
)

// Final move policy by name: "visits" (default) or "winrate"
func BestChildPolicyByName(name string) (BestChildPolicy, bool) {
	switch name {
	case "", "visits":
		return BestChildMostVisits, true
	case "winrate":
		return BestChildWinRate, true
	}
	return BestChildMostVisits, false
}
