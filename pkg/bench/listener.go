package bench

import (
	"github.com/rs/zerolog"
)

// Arena callbacks. A single listener is shared by every worker, so
// implementations must be safe for concurrent use.
type ListenerLike interface {
	OnStart()
	OnGameStart(info VersusWorkerInfo)
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(info VersusSummaryInfo)
	OnEnd()
}

type DefaultListener struct{}

func (DefaultListener) OnStart() {}
func (DefaultListener) OnGameStart(VersusWorkerInfo) {}
func (DefaultListener) OnMoveMade(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (DefaultListener) Summary(VersusSummaryInfo) {}
func (DefaultListener) OnEnd() {}

// Writes finished games and the summary to a zerolog logger, moves at trace level
type LogListener struct {
	DefaultListener
	logger zerolog.Logger
}

func NewLogListener(logger zerolog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnStart() {
	l.logger.Info().Msg("arena started")
}

func (l *LogListener) OnMoveMade(info VersusWorkerInfo) {
	if len(info.Moves) == 0 {
		return
	}
	l.logger.Trace().
		Int("worker", info.WorkerID).
		Int("ply", info.GameMoveNum).
		Stringer("move", info.Moves[len(info.Moves)-1]).
		Send()
}

func (l *LogListener) OnFinishedGame(info VersusWorkerInfo) {
	l.logger.Debug().
		Int("worker", info.WorkerID).
		Int("game", info.FinishedGames).
		Int("moves", info.GameMoveNum).
		Stringer("result", info.Termination).
		Msgf("%s vs %s", info.P1Name, info.P2Name)
}

func (l *LogListener) OnFinishedWork(info VersusWorkerInfo) {
	l.logger.Debug().
		Int("worker", info.WorkerID).
		Int("games", info.NGames).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Msg("worker finished")
}

func (l *LogListener) Summary(info VersusSummaryInfo) {
	l.logger.Info().
		Int("games", info.TotalGames).
		Str("player1", info.P1Name).
		Str("player2", info.P2Name).
		Int("p1_wins", info.P1Wins).
		Int("p2_wins", info.P2Wins).
		Int("draws", info.Draws).
		Int("first_to_move_wins", info.FirstToMoveWins).
		Float64("p1_avg_ms", info.P1Metrics.AvgMs).
		Float64("p2_avg_ms", info.P2Metrics.AvgMs).
		Int64("elapsed_ms", info.ElapsedMs).
		Msg("arena summary")
}
