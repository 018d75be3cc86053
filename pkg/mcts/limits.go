package mcts

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/IlikeChooros/go-inarow/pkg/game"
)

type Limits struct {
	Depth    int
	Nodes    uint32
	Cycles   uint32
	Movetime int
	Infinite bool
	ByteSize int64
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int    = math.MaxInt
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
	DefaultByteSizeLimit int64  = -1
	DefaultCyclesLimit   uint32 = math.MaxUint32
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		ByteSize: DefaultByteSizeLimit,
	}
}

// Search budget of a difficulty level: iterations and movetime, whichever ends first
func LimitsFor(difficulty game.Difficulty) *Limits {
	switch difficulty {
	case game.Easy:
		return DefaultLimits().SetCycles(200).SetMovetime(500)
	case game.Medium:
		return DefaultLimits().SetCycles(500).SetMovetime(1000)
	}
	return DefaultLimits().SetCycles(1000).SetMovetime(2000)
}

// Set the maximum depth of the search
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// Set the maxiumum number of nodes the tree can hold, once reached
// the tree stops growing
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the number of iterations (selection, expansion, simulation, backpropagation)
func (l *Limits) SetCycles(cycles uint32) *Limits {
	l.Cycles = cycles
	l.Infinite = false
	return l
}

// Set the maximum time for engine to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetMbSize(mbsize int) *Limits {
	return l.SetByteSize(int64(mbsize) * (1 << 20))
}

func (l *Limits) SetByteSize(bytesize int64) *Limits {
	l.ByteSize = bytesize
	l.Infinite = false
	return l
}

// No node or memory cap, the tree grows until another limit stops it
func (l *Limits) InfiniteSize() bool {
	return l.ByteSize == DefaultByteSizeLimit && l.Nodes == DefaultNodeLimit
}
