package episode

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/evasion/internal/evasion"
	"github.com/vovakirdan/evasion/internal/registry"
)

// Result summarises one finished episode.
type Result struct {
	Episode       int // Index within a batch
	Hunter        string
	Prey          string
	Seed          int64
	Captured      bool
	Truncated     bool
	Ticks         int
	WallsBuilt    int
	WallsRemoved  int
	FinalDistance float64
	Duration      time.Duration
}

// TickRecord describes one tick: the decisions fed in and the state after.
type TickRecord struct {
	Seed     int64
	Action   evasion.HunterAction
	PreyMove evasion.Point // Move actually handed to the engine
	State    evasion.Snapshot
}

// Recorder receives every tick of an episode followed by its result.
type Recorder interface {
	Record(r TickRecord) error
	EndEpisode(res Result) error
}

// Run plays one episode from a fresh Reset until capture, truncation or
// cancellation. On cancellation the partial result is returned together with
// the context's error.
func Run(ctx context.Context, env *Env, hunter registry.Hunter, prey registry.Prey, seed int64, rec Recorder) (Result, error) {
	start := time.Now()
	env.Reset(seed)
	hunter.Reset(seed)
	prey.Reset(seed)

	res := Result{
		Hunter: hunter.ID(),
		Prey:   prey.ID(),
		Seed:   seed,
	}

	for {
		if err := ctx.Err(); err != nil {
			fill(&res, env, start)
			return res, err
		}

		s := env.Snapshot()
		action := hunter.Act(s)
		step := env.Step(action, prey.Move(s))

		if rec != nil {
			tr := TickRecord{
				Seed:     seed,
				Action:   action,
				PreyMove: env.PreyMove(),
				State:    env.Snapshot(),
			}
			if err := rec.Record(tr); err != nil {
				fill(&res, env, start)
				return res, fmt.Errorf("episode: record tick %d: %w", tr.State.Tick, err)
			}
		}

		if step.Terminated || step.Truncated {
			res.Captured = step.Terminated
			res.Truncated = step.Truncated
			break
		}
	}

	fill(&res, env, start)
	if rec != nil {
		if err := rec.EndEpisode(res); err != nil {
			return res, fmt.Errorf("episode: end episode: %w", err)
		}
	}
	return res, nil
}

func fill(res *Result, env *Env, start time.Time) {
	g := env.Game()
	res.Ticks = g.TickNum()
	res.WallsBuilt = g.WallsBuilt()
	res.WallsRemoved = g.WallsRemoved()
	res.FinalDistance = g.Distance()
	res.Duration = time.Since(start)
}
