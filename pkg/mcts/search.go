package mcts

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// This function only sets the limits, resets the counters, and the stop flag
// doesn't actually start the search
func (mcts *MCTS) setupSearch() {
	mcts.Limiter.Reset()
	mcts.TreeStats = TreeStats{}
}

// Run the search on the current root, until a limit is reached:
//
// 1. selection - descend to the most promising node
//
// 2. expansion - add one child for an untried move
//
// 3. simulation - random playout from the new node
//
// 4. backpropagation - add the result to every node up to the root
//
// A failing phase skips the iteration, a failing selection ends the search.
// Returns ErrSearchExhausted if no child of the root was created.
func (mcts *MCTS) Search() error {
	root := mcts.Root()
	if root == nil {
		return ErrNoRoot
	}

	mcts.setupSearch()
	if root.Terminal() {
		mcts.Limiter.EvaluateStopReason(mcts.Size(), 0, 0)
		mcts.Limiter.SetStop(true)
		mcts.invokeListener(mcts.listener.onStop)
		return errors.Wrap(ErrSearchExhausted, "root position is terminal")
	}

	consecutive := 0

Loop:
	for mcts.Limiter.Ok(mcts.Size(), uint32(mcts.maxdepth), uint32(mcts.cycles)) {
		if mcts.Limiter.Checkpoint() {
			break
		}

		err := mcts.iterate()
		switch {
		case err == nil:
			consecutive = 0
		case errors.Is(err, ErrSelection):
			mcts.faults++
			log.Warn().Err(err).Int("cycles", mcts.cycles).Msg("mcts: stopping search")
			mcts.Limiter.Abort(StopFaults)
			break Loop
		default:
			mcts.faults++
			consecutive++
			log.Debug().Err(err).Int("cycles", mcts.cycles).Msg("mcts: iteration skipped")
			if consecutive >= MaxConsecutiveFaults {
				mcts.Limiter.Abort(StopFaults)
			}
			continue
		}

		// Increment cycle count and store the cps
		mcts.cycles++
		mcts.cps = uint32(mcts.cycles) * 1000 / mcts.Limiter.Elapsed()
		mcts.listener.invokeCycle(mcts)
	}

	mcts.Limiter.EvaluateStopReason(mcts.Size(), uint32(mcts.maxdepth), uint32(mcts.cycles))
	mcts.Limiter.SetStop(true)
	if mcts.Limiter.TimedOut() {
		log.Debug().Int("cycles", mcts.cycles).Uint32("ms", mcts.Limiter.Elapsed()).Msg("mcts: time checkpoint reached")
	}
	mcts.invokeListener(mcts.listener.onStop)

	if len(mcts.nodes[rootHandle].Children) == 0 {
		return ErrSearchExhausted
	}
	return nil
}

// Single iteration, a panic inside any phase is returned as ErrInternalFault
func (mcts *MCTS) iterate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrInternalFault, "recovered: %v", r)
		}
	}()

	leaf, depth, err := mcts.selection(rootHandle)
	if err != nil {
		return err
	}

	leaf, expanded, err := mcts.expansion(leaf)
	if err != nil {
		return err
	}
	if expanded {
		depth++
	}

	outcome, err := mcts.simulation(leaf)
	if err != nil {
		return err
	}

	mcts.strategy.Backpropagate(mcts, leaf, outcome)

	if depth > mcts.maxdepth {
		mcts.maxdepth = depth
		mcts.invokeListener(mcts.listener.onDepth)
	}
	return nil
}
