package bench

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/IlikeChooros/go-inarow/pkg/game"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) record(result VersusMatchResult, outcome GameOutcome) {
	switch result {
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	default:
		atomic.AddUint32(&vas.draws, 1)
		return
	}

	if outcome.FirstPlayerWon {
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

// Move timing of one player, over every game it played
type MoveMetrics struct {
	Moves     int
	Fallbacks int
	Total     time.Duration
	Max       time.Duration
	Min       time.Duration
}

func (m *MoveMetrics) Add(d time.Duration, fallback bool) {
	if m.Moves == 0 || d < m.Min {
		m.Min = d
	}
	m.Max = max(m.Max, d)
	m.Total += d
	m.Moves++
	if fallback {
		m.Fallbacks++
	}
}

func (m *MoveMetrics) Merge(other MoveMetrics) {
	if other.Moves == 0 {
		return
	}
	if m.Moves == 0 || other.Min < m.Min {
		m.Min = other.Min
	}
	m.Max = max(m.Max, other.Max)
	m.Total += other.Total
	m.Moves += other.Moves
	m.Fallbacks += other.Fallbacks
}

func (m MoveMetrics) Avg() time.Duration {
	if m.Moves == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Moves)
}

func (m MoveMetrics) Summary() MoveMetricsInfo {
	return MoveMetricsInfo{
		Moves:     m.Moves,
		Fallbacks: m.Fallbacks,
		TotalMs:   toMs(m.Total),
		AvgMs:     toMs(m.Avg()),
		MaxMs:     toMs(m.Max),
		MinMs:     toMs(m.Min),
	}
}

func toMs(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Microsecond)) / 1000
}

type MoveMetricsInfo struct {
	Moves     int     `json:"moves"`
	Fallbacks int     `json:"fallbacks"`
	TotalMs   float64 `json:"total_ms"`
	AvgMs     float64 `json:"avg_ms"`
	MaxMs     float64 `json:"max_ms"`
	MinMs     float64 `json:"min_ms"`
}

type VersusWorkerInfo struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []game.Coord
	Termination   game.Termination
	P1Wins        int
	P2Wins        int
	Draws         int
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames       int             `json:"total_games"`
	P1Wins           int             `json:"player1_wins"`
	P2Wins           int             `json:"player2_wins"`
	FirstToMoveWins  int             `json:"first_to_move_wins"`
	SecondToMoveWins int             `json:"second_to_move_wins"`
	Draws            int             `json:"draws"`
	Workers          int             `json:"workers"`
	BoardSize        int             `json:"board_size"`
	P1Name           string          `json:"player1_name"`
	P2Name           string          `json:"player2_name"`
	P1Metrics        MoveMetricsInfo `json:"player1_metrics"`
	P2Metrics        MoveMetricsInfo `json:"player2_metrics"`
	ElapsedMs        int64           `json:"elapsed_ms"`
}

// Result of a single game, from the first mover's perspective
type GameOutcome struct {
	FirstPlayerWon bool
	IsDraw         bool
}

// The first mover always plays the Human piece
func outcomeOf(state *game.State) GameOutcome {
	winner, ok := state.Winner()
	if !ok || winner == game.Empty {
		return GameOutcome{IsDraw: true}
	}
	return GameOutcome{FirstPlayerWon: winner == game.Human}
}

// Maps a game outcome to the player that won, given the seat assignment
func toAgentResult(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	if outcome.IsDraw {
		return VersusDraw
	}

	if p1WentFirst == outcome.FirstPlayerWon {
		return VersusPl1Win
	}
	return VersusPl2Win
}
