package bench

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/IlikeChooros/go-inarow/pkg/engine"
	"github.com/IlikeChooros/go-inarow/pkg/game"
	"github.com/IlikeChooros/go-inarow/pkg/mcts"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, plays a series of games between two engine
configurations. Seats alternate between games, so each player moves first
in half of them.
*/

type VersusArena struct {
	VersusArenaStats
	Player1   engine.Config
	Player2   engine.Config
	NGames    int
	NThreads  int
	BoardSize int
	ctx       context.Context
	mu        sync.Mutex
	metrics   [2]MoveMetrics
}

func NewVersusArena(boardSize int, player1, player2 engine.Config) *VersusArena {
	return &VersusArena{
		Player1:   player1,
		Player2:   player2,
		NGames:    100,
		NThreads:  2,
		BoardSize: boardSize,
		ctx:       context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames, nThreads int) *VersusArena {
	va.NGames = max(nGames, 0)
	va.NThreads = max(nThreads, 1)
	return va
}

// Move metrics of player 1 and player 2
func (va *VersusArena) Metrics() (MoveMetrics, MoveMetrics) {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.metrics[0], va.metrics[1]
}

func (va *VersusArena) Summary(elapsed time.Duration) VersusSummaryInfo {
	m1, m2 := va.Metrics()
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          va.NThreads,
		BoardSize:        va.BoardSize,
		P1Name:           va.Player1.Engine,
		P2Name:           va.Player2.Engine,
		P1Metrics:        m1.Summary(),
		P2Metrics:        m2.Summary(),
		ElapsedMs:        elapsed.Milliseconds(),
	}
}

// Play all games, blocking until every worker is done or the context is
// cancelled. The summary covers the games finished so far in both cases.
func (va *VersusArena) Run(listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}
	if !game.SupportedSize(va.BoardSize) {
		return VersusSummaryInfo{}, errors.Wrapf(game.ErrUnsupportedSize, "%d", va.BoardSize)
	}
	// Fail early on a bad configuration, before spawning the workers
	for _, cfg := range []engine.Config{va.Player1, va.Player2} {
		if _, err := engine.New(cfg); err != nil {
			return VersusSummaryInfo{}, err
		}
	}

	start := time.Now()
	listener.OnStart()

	// Equally distributed work between the workers
	nThreads := max(va.NThreads, 1)
	nGames := va.NGames / nThreads
	rest := va.NGames % nThreads

	g, ctx := errgroup.WithContext(va.ctx)
	offset := 0
	for i := range nThreads {
		count := nGames
		if i < rest {
			count++
		}
		id, first := i, offset
		g.Go(func() error {
			return va.worker(ctx, id, first, count, listener)
		})
		offset += count
	}

	err := g.Wait()
	summary := va.Summary(time.Since(start))
	listener.Summary(summary)
	listener.OnEnd()
	return summary, err
}

// Engines are created per worker, each worker owns its engines, state and rng
func (va *VersusArena) worker(ctx context.Context, id, first, nGames int, listener ListenerLike) error {
	p1, err := engine.New(workerConfig(va.Player1, id))
	if err != nil {
		return err
	}
	p2, err := engine.New(workerConfig(va.Player2, id))
	if err != nil {
		return err
	}

	state, err := game.NewState(va.BoardSize)
	if err != nil {
		return err
	}

	r := rand.New(rand.NewSource(mcts.SeedGeneratorFn() + int64(id)))
	local := VersusArenaStats{}
	info := VersusWorkerInfo{
		WorkerID: id,
		NGames:   nGames,
		P1Name:   va.Player1.Engine,
		P2Name:   va.Player2.Engine,
	}

	for i := range nGames {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Seats alternate by global game number
		p1WentFirst := (first+i)%2 == 0
		seats := [2]seat{{p1, 0}, {p2, 1}}
		if !p1WentFirst {
			seats[0], seats[1] = seats[1], seats[0]
		}

		state.Reset()
		info.FinishedGames = i
		info.Termination = state.Termination()
		metrics, err := va.playGame(ctx, state, seats, r, listener, &info)
		if err != nil {
			return err
		}

		outcome := outcomeOf(state)
		result := toAgentResult(outcome, p1WentFirst)
		va.record(result, outcome)
		local.record(result, outcome)

		va.mu.Lock()
		va.metrics[0].Merge(metrics[0])
		va.metrics[1].Merge(metrics[1])
		va.mu.Unlock()

		info.FinishedGames = i + 1
		info.P1Wins, info.P2Wins, info.Draws = local.P1Wins(), local.P2Wins(), local.Draws()
		info.Termination = state.Termination()
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(info)
	return nil
}

type seat struct {
	engine engine.Engine
	player int // 0 for player 1, 1 for player 2
}

// Play a single game to the end, seats[0] moves first. Returns the move
// metrics of player 1 and player 2, indexed by player. The game's moves are
// recorded in 'info'.
func (va *VersusArena) playGame(
	ctx context.Context, state *game.State, seats [2]seat,
	r *rand.Rand, listener ListenerLike, info *VersusWorkerInfo,
) ([2]MoveMetrics, error) {
	var metrics [2]MoveMetrics
	info.Moves = make([]game.Coord, 0, va.BoardSize*va.BoardSize)
	info.GameMoveNum = 0
	listener.OnGameStart(*info)

	for turn := 0; !state.IsGameOver(); turn++ {
		if err := ctx.Err(); err != nil {
			return metrics, err
		}

		s := seats[turn%2]
		played, err := engine.Play(state, s.engine, r)
		if err != nil {
			return metrics, errors.WithMessagef(err, "worker %d, %s", info.WorkerID, s.engine.Name())
		}
		metrics[s.player].Add(played.Duration, played.Fallback)

		info.Moves = append(info.Moves, played.Move)
		info.GameMoveNum = len(info.Moves)
		listener.OnMoveMade(*info)
	}
	return metrics, nil
}

// Fixed seeds are offset per worker, so workers don't replay the same games
func workerConfig(cfg engine.Config, id int) engine.Config {
	if cfg.Seed != 0 {
		cfg.Seed += int64(id)
	}
	return cfg
}
