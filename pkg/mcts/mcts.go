package mcts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"unsafe"

	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/rs/zerolog/log"
)

type TreeStats struct {
	maxdepth int
	cps      uint32
	cycles   int
	faults   int
}

// Monte Carlo tree over an arena of nodes, root at handle 0.
// The tree is rebuilt for every position, it never aliases the caller's state.
type MCTS struct {
	TreeStats
	listener   *StatsListener
	Limiter    LimiterLike
	policy     SelectionPolicy
	strategy   StrategyLike
	nodes      []Node
	rand       *rand.Rand
	rootPlayer game.Piece
	difficulty game.Difficulty
	bestChild  BestChildPolicy
}

// Create new empty tree, call Reset to set the position
func NewMCTS(policy SelectionPolicy, strategy StrategyLike) *MCTS {
	tree := &MCTS{
		listener:   &StatsListener{nCycles: 1},
		Limiter:    LimiterLike(NewLimiter(uint32(unsafe.Sizeof(Node{})))),
		policy:     policy,
		strategy:   strategy,
		rand:       rand.New(rand.NewSource(SeedGeneratorFn())),
		difficulty: game.Medium,
	}

	// Set IsSearching to false
	tree.Limiter.SetStop(true)
	return tree
}

// Searcher with UCB1 selection, perspective backpropagation and the difficulty's budget
func NewSearcher(difficulty game.Difficulty) *MCTS {
	tree := NewMCTS(NewUCB1(ExplorationParam), PerspectiveBackprop{})
	tree.SetDifficulty(difficulty)
	return tree
}

func (mcts *MCTS) invokeListener(f ListenerFunc) {
	if f != nil {
		f(toListenerStats(mcts))
	}
}

// Set the difficulty and its search budget
func (mcts *MCTS) SetDifficulty(difficulty game.Difficulty) {
	mcts.difficulty = difficulty
	mcts.Limiter.SetLimits(LimitsFor(difficulty))
}

func (mcts *MCTS) Difficulty() game.Difficulty {
	return mcts.difficulty
}

func (mcts *MCTS) SetRand(r *rand.Rand) {
	if r != nil {
		mcts.rand = r
	}
}

func (mcts *MCTS) ResetListener() {
	mcts.listener.OnCycle(nil).OnDepth(nil).OnStop(nil)
}

func (mcts *MCTS) StatsListener() *StatsListener {
	return mcts.listener
}

func (mcts *MCTS) SetListener(listener StatsListener) {
	*mcts.listener = listener
}

// Adds custom context to the limiter, enabling cancellation through it
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
//	defer cancel()
//
//	tree.SetContext(ctx)
//	move := tree.SelectMove(state) // returns at the latest after 100ms
func (mcts *MCTS) SetContext(ctx context.Context) {
	mcts.Limiter.SetContext(ctx)
}

func (mcts *MCTS) IsSearching() bool {
	return !mcts.Limiter.Stop()
}

// Stop the search
func (mcts *MCTS) Stop() {
	mcts.Limiter.SetStop(true)
}

// Maxiumum depth reached during the search, note that usually MaxDepth != len(pv)
func (mcts *MCTS) MaxDepth() int {
	return mcts.maxdepth
}

// Number of completed iterations of the last search
func (mcts *MCTS) Cycles() int {
	return mcts.cycles
}

// Number of iterations that failed and were skipped during the last search
func (mcts *MCTS) Faults() int {
	return mcts.faults
}

// Get cycles per second statistic
func (mcts *MCTS) Cps() uint32 {
	return mcts.cps
}

// Get the reason why the search was stopped, valid after search ends
func (mcts *MCTS) StopReason() StopReason {
	return mcts.Limiter.StopReason()
}

// Whether the last search hit the time checkpoint
func (mcts *MCTS) TimedOut() bool {
	return mcts.Limiter.TimedOut()
}

func (mcts *MCTS) SetLimits(limits *Limits) {
	mcts.Limiter.SetLimits(limits)
}

func (mcts *MCTS) Limits() *Limits {
	return mcts.Limiter.Limits()
}

func (mcts *MCTS) Strategy() StrategyLike {
	return mcts.strategy
}

func (mcts *MCTS) SetStrategy(strategy StrategyLike) {
	mcts.strategy = strategy
}

func (mcts *MCTS) Policy() SelectionPolicy {
	return mcts.policy
}

// Player to move in the root position
func (mcts *MCTS) RootPlayer() game.Piece {
	return mcts.rootPlayer
}

// Node behind the handle, nil for an invalid handle. The pointer is valid
// until the tree grows.
func (mcts *MCTS) Node(h int32) *Node {
	if h < 0 || int(h) >= len(mcts.nodes) {
		return nil
	}
	return &mcts.nodes[h]
}

func (mcts *MCTS) Root() *Node {
	return mcts.Node(rootHandle)
}

// Get the size of the tree
func (mcts *MCTS) Size() uint32 {
	return uint32(len(mcts.nodes))
}

// Returns approximation of memory usage of the tree structure
func (mcts *MCTS) MemoryUsage() uint32 {
	return mcts.Size()*uint32(unsafe.Sizeof(Node{})) + uint32(unsafe.Sizeof(MCTS{}))
}

func (mcts *MCTS) String() string {
	str := fmt.Sprintf("MCTS={Size=%d, Stats:{maxdepth=%d, cps=%d, cycles=%d, faults=%d}, Stop=%v",
		mcts.Size(), mcts.MaxDepth(), mcts.Cps(), mcts.Cycles(), mcts.Faults(), !mcts.IsSearching())
	if root := mcts.Root(); root != nil {
		str += fmt.Sprintf(", Root=%v", root)
	}
	return str + "}"
}

// Discard the previous tree and make a new root from a copy of 'state'
func (mcts *MCTS) Reset(state *game.State) {
	if mcts.IsSearching() {
		mcts.Stop()
	}

	mcts.nodes = mcts.nodes[:0]
	mcts.rootPlayer = state.CurrentPlayer()
	mcts.nodes = append(mcts.nodes, newNode(*state, NoNode, game.Coord{}, mcts.rootPlayer.Opponent()))
	mcts.TreeStats = TreeStats{}
}

// Policy choosing the move played after the search
func (mcts *MCTS) SetBestChildPolicy(policy BestChildPolicy) {
	mcts.bestChild = policy
}

func (mcts *MCTS) BestChildPolicy() BestChildPolicy {
	return mcts.bestChild
}

// Root child picked by the best child policy. Falls back to the most visited
// child when no child is visited often enough to judge its win rate.
func (mcts *MCTS) rootBest() int32 {
	best := mcts.BestChild(rootHandle, mcts.bestChild)
	if best == NoNode && mcts.bestChild != BestChildMostVisits {
		best = mcts.BestChild(rootHandle, BestChildMostVisits)
	}
	return best
}

// 'the best move' in the position, false if the root has no children
func (mcts *MCTS) RootMove() (game.Coord, bool) {
	if best := mcts.rootBest(); best != NoNode {
		return mcts.nodes[best].Move, true
	}
	return game.Coord{}, false
}

// Current evaluation of the best move, from the root player's perspective
func (mcts *MCTS) RootScore() Result {
	if best := mcts.rootBest(); best != NoNode {
		return mcts.nodes[best].Stats.AvgQ()
	}
	return Result(math.NaN())
}

// Return best child, based on the policy
func (mcts *MCTS) BestChild(h int32, policy BestChildPolicy) int32 {
	node := mcts.Node(h)
	if node == nil {
		return NoNode
	}

	best := NoNode
	switch policy {
	case BestChildMostVisits:
		maxVisits := int32(0)
		for _, c := range node.Children {
			if v := mcts.nodes[c].Stats.N(); v > maxVisits {
				maxVisits = v
				best = c
			}
		}
	case BestChildWinRate:
		const minVisitsThreshold = 10

		bestWinRate := Result(-1)
		for _, c := range node.Children {
			stats := &mcts.nodes[c].Stats
			if stats.N() > minVisitsThreshold && stats.AvgQ() > bestWinRate {
				bestWinRate = stats.AvgQ()
				best = c
			}
		}
	}
	return best
}

// Get the principal variation (ie. the best sequence of moves)
// from given starting node, following the most visited children
func (mcts *MCTS) Pv(h int32) []game.Coord {
	pv := make([]game.Coord, 0, mcts.maxdepth+1)
	for {
		h = mcts.BestChild(h, BestChildMostVisits)
		if h == NoNode {
			return pv
		}
		pv = append(pv, mcts.nodes[h].Move)
	}
}

// Search a copy of 'state' and return the root move picked by the best child
// policy. Never fails: without a usable search result it plays a random empty
// cell, and on a full board it returns (0,0).
func (mcts *MCTS) SelectMove(state *game.State) game.Coord {
	empty := state.Board().EmptyCells()
	if len(empty) == 0 {
		log.Warn().Msg("mcts: no empty cells, returning (0,0)")
		return game.Coord{}
	}

	mcts.Reset(state)
	err := mcts.Search()
	if err == nil {
		if move, ok := mcts.RootMove(); ok {
			log.Debug().
				Str("difficulty", mcts.difficulty.String()).
				Int("cycles", mcts.Cycles()).
				Uint32("size", mcts.Size()).
				Stringer("stop", mcts.StopReason()).
				Float64("eval", float64(mcts.RootScore())).
				Stringer("move", move).
				Msg("mcts move")
			return move
		}
		err = ErrSearchExhausted
	}

	move := empty[mcts.rand.Intn(len(empty))]
	log.Debug().
		Err(err).
		Bool("timeout", mcts.TimedOut()).
		Int("cycles", mcts.Cycles()).
		Stringer("move", move).
		Msg("mcts: falling back to a random move")
	return move
}
