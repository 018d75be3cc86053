package mcts

import (
	"context"
	"math"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1  // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached, or its checkpoint
	StopMemory    StopReason = 4  // Node or memory limit reached
	StopDepth     StopReason = 8  // Depth limit reached
	StopCycles    StopReason = 16 // Cycle limit reached
	StopFaults    StopReason = 32 // Too many failing iterations in a row
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopDepth, "Depth"},
		{StopCycles, "Cycles"},
		{StopFaults, "Faults"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Get elapsed time in ms (from the last 'Reset' call)
	Elapsed() uint32
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Stop the search for a reason the limiter can't observe by itself
	Abort(StopReason)
	// Reset the limiter's flags, called on search setup
	Reset()
	// Wheter the tree can grow
	Expand() bool
	// Wheter the search should continue, called in the main search loop
	Ok(size, depth, cycles uint32) bool
	// True once the time checkpoint was passed, the search should return now
	Checkpoint() bool
	// Whether the checkpoint was hit during the last search
	TimedOut() bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state, and set it internally,
	// called once after the search loop ends
	EvaluateStopReason(size, depth, cycles uint32)
}

type Limiter struct {
	limits     *Limits
	timer      *searchTimer
	nodeSize   uint32
	maxSize    uint32
	expand     bool
	stop       atomic.Bool
	timedOut   bool
	aborted    StopReason
	areSetMask StopReason
	reason     StopReason
	ctx        context.Context
}

func NewLimiter(nodesize uint32) *Limiter {
	return &Limiter{
		limits:   DefaultLimits(),
		timer:    newSearchTimer(),
		nodeSize: max(nodesize, 1),
		expand:   true,
		ctx:      context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.timer.SetMovetime(l.limits.Movetime)
	l.timer.Restart()
	l.stop.Store(false)
	l.expand = true
	l.timedOut = false
	l.aborted = StopNone
	l.reason = StopNone

	// Tree size cap, from the node limit and the memory limit
	l.maxSize = math.MaxUint32
	if !l.limits.InfiniteSize() {
		if l.limits.Nodes != DefaultNodeLimit {
			l.maxSize = l.limits.Nodes
		}
		if l.limits.ByteSize != DefaultByteSizeLimit {
			l.maxSize = min(l.maxSize, uint32(l.limits.ByteSize/int64(l.nodeSize)))
		}
	}

	// Pre-calculate 'are set' limit mask, see 'OkMask'
	l.areSetMask = flagIf(l.timer.Armed(), StopMovetime) |
		flagIf(l.maxSize != math.MaxUint32, StopMemory) |
		flagIf(l.limits.Depth != DefaultDepthLimit, StopDepth) |
		flagIf(l.limits.Cycles != DefaultCyclesLimit, StopCycles)
}

func (l *Limiter) EvaluateStopReason(size, depth, cycles uint32) {
	reason := l.OkMask(size, depth, cycles)
	if l.timedOut {
		reason |= StopMovetime
	}
	if l.aborted != StopNone {
		// abort raises the stop flag by itself, that's not an interrupt
		reason = reason&^StopInterrupt | l.aborted
	}
	l.reason = reason
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) Abort(reason StopReason) {
	l.aborted |= reason
	l.stop.Store(true)
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return l.timer.ElapsedMs()
}

func (l *Limiter) Expand() bool {
	return l.expand
}

func (l *Limiter) Checkpoint() bool {
	if !l.timedOut && !l.limits.Infinite && l.timer.Passed(CheckpointFraction) {
		l.timedOut = true
	}
	return l.timedOut
}

func (l *Limiter) TimedOut() bool {
	return l.timedOut
}

func flagIf(val bool, flag StopReason) StopReason {
	if val {
		return flag
	}
	return StopNone
}

// Every limit currently reached
func (l *Limiter) LimitMask(size, depth, cycles uint32) StopReason {
	stop := l.Stop()
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return flagIf(stop, StopInterrupt)
	}

	return flagIf(stop, StopInterrupt) |
		flagIf(l.timer.Expired(), StopMovetime) |
		flagIf(l.maxSize <= size, StopMemory) |
		flagIf(l.limits.Depth <= int(depth), StopDepth) |
		flagIf(l.limits.Cycles <= cycles, StopCycles)
}

// Limits that should stop the search
func (l *Limiter) OkMask(size, depth, cycles uint32) StopReason {
	limitMask := l.LimitMask(size, depth, cycles)

	// (time/cycles or both) AND size limit ->
	// if the tree is full, disable expanding and wait for the other limit
	if l.areSetMask&StopMemory == StopMemory && l.areSetMask&(StopMovetime|StopCycles) != 0 {
		if limitMask&StopMemory == StopMemory {
			l.expand = false
			limitMask &^= StopMemory
		}
	}

	return limitMask
}

func (l *Limiter) Ok(size, depth, cycles uint32) bool {
	return l.OkMask(size, depth, cycles) == StopNone
}
