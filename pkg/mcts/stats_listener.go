package mcts

import "github.com/IlikeChooros/go-inarow/pkg/game"

type ListenerTreeStats struct {
	Maxdepth   int
	Cycles     int
	Faults     int
	TimeMs     int
	Cps        uint32
	Size       uint32
	BestMove   game.Coord
	Eval       float64
	Pv         []game.Coord
	StopReason StopReason
	TimedOut   bool
}

// Convert tree statistics to 'ListenerTreeStats' struct
func toListenerStats(tree *MCTS) ListenerTreeStats {
	stats := ListenerTreeStats{
		Maxdepth:   tree.MaxDepth(),
		Cycles:     tree.Cycles(),
		Faults:     tree.Faults(),
		TimeMs:     int(tree.Limiter.Elapsed()),
		Cps:        tree.Cps(),
		Size:       tree.Size(),
		Pv:         tree.Pv(rootHandle),
		StopReason: tree.Limiter.StopReason(),
		TimedOut:   tree.TimedOut(),
	}
	if move, ok := tree.RootMove(); ok {
		stats.BestMove = move
		stats.Eval = float64(tree.RootScore())
	}
	return stats
}

// Listener function callback, will recieve current tree statistics, like
// max depth of tree, number of iterations so far
type ListenerFunc func(ListenerTreeStats)

type StatsListener struct {
	// called when 'max depth' increases
	onDepth ListenerFunc

	// called every N full iterations
	onCycle ListenerFunc
	nCycles int // call 'onCycle' every N cycles

	// called when the search stops
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{nCycles: 1}
}

// Attach new on max depth change callback
func (listener *StatsListener) OnDepth(onDepth ListenerFunc) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach new on iteration increase callback, this slows down the search
// because of pv evaluation, so use a big cycle interval
func (listener *StatsListener) OnCycle(onCycle ListenerFunc) *StatsListener {
	listener.onCycle = onCycle
	return listener
}

func (listener *StatsListener) invokeCycle(tree *MCTS) {
	if listener.onCycle != nil && tree.Cycles()%max(listener.nCycles, 1) == 0 {
		listener.onCycle(toListenerStats(tree))
	}
}

func (listener *StatsListener) SetCycleInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nCycles = n
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}
