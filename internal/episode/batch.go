package episode

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evasion/internal/config"
	"github.com/vovakirdan/evasion/internal/registry"
)

// ResultSaver persists finished episodes.
type ResultSaver interface {
	SaveResult(res Result) error
}

// BatchConfig describes a batch of independent episodes.
type BatchConfig struct {
	Config   config.EvasionConfig
	Hunter   string // Hunter policy ID
	Prey     string // Prey policy ID
	Episodes int
	Workers  int   // 0 = one per CPU
	Seed     int64 // Episode i is played with Seed+i
	Recorder Recorder
	Logger   *log.Logger
}

// BatchSummary aggregates a batch. Results are ordered by episode index.
type BatchSummary struct {
	Results   []Result
	Captures  int
	Truncated int
	MeanTicks float64
}

// CaptureRate returns the fraction of episodes that ended in a capture.
func (s BatchSummary) CaptureRate() float64 {
	if len(s.Results) == 0 {
		return 0
	}
	return float64(s.Captures) / float64(len(s.Results))
}

// outcome travels from a worker to the collector.
type outcome struct {
	res   Result
	ticks []TickRecord
	err   error
}

// RunBatch plays bc.Episodes episodes on bc.Workers goroutines. Every worker
// owns its own Env and policy instances. Results and recorded ticks flow over
// a channel to the calling goroutine, which alone touches bc.Recorder and
// sink, so neither needs to be safe for concurrent use. sink may be nil.
//
// The first failure cancels the remaining episodes and is returned.
func RunBatch(ctx context.Context, bc BatchConfig, sink ResultSaver) (BatchSummary, error) {
	if bc.Episodes <= 0 {
		return BatchSummary{}, nil
	}
	if !registry.HunterExists(bc.Hunter) {
		return BatchSummary{}, fmt.Errorf("episode: unknown hunter %q", bc.Hunter)
	}
	if !registry.PreyExists(bc.Prey) {
		return BatchSummary{}, fmt.Errorf("episode: unknown prey %q", bc.Prey)
	}
	if err := bc.Config.Validate(); err != nil {
		return BatchSummary{}, err
	}

	logger := bc.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := bc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, bc.Episodes)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	outcomes := make(chan outcome, workers*2)

	go func() {
		defer close(jobs)
		for i := 0; i < bc.Episodes; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			runWorker(ctx, workerID, bc, logger, jobs, outcomes)
		}(w)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var (
		summary  BatchSummary
		firstErr error
	)
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	for out := range outcomes {
		if out.err != nil {
			fail(out.err)
			continue
		}
		if firstErr != nil {
			continue
		}
		if err := deliver(bc.Recorder, sink, out); err != nil {
			fail(err)
			continue
		}

		summary.Results = append(summary.Results, out.res)
		logger.Debug("episode finished",
			"episode", out.res.Episode,
			"seed", out.res.Seed,
			"captured", out.res.Captured,
			"ticks", out.res.Ticks,
			"walls", out.res.WallsBuilt)
	}

	summarize(&summary)
	return summary, firstErr
}

func runWorker(ctx context.Context, workerID int, bc BatchConfig, logger *log.Logger, jobs <-chan int, out chan<- outcome) {
	env, hunter, prey, err := newWorkerKit(bc, logger)
	if err != nil {
		select {
		case out <- outcome{err: fmt.Errorf("episode: worker %d: %w", workerID, err)}:
		case <-ctx.Done():
		}
		return
	}

	logger.Debug("worker started", "worker", workerID)
	playJobs(ctx, env, hunter, prey, bc, jobs, out)
}

func newWorkerKit(bc BatchConfig, logger *log.Logger) (*Env, registry.Hunter, registry.Prey, error) {
	env, err := NewEnv(bc.Config, WithEnvLogger(logger), WithBoardObservations(false))
	if err != nil {
		return nil, nil, nil, err
	}
	hunter, err := registry.CreateHunter(bc.Hunter)
	if err != nil {
		return nil, nil, nil, err
	}
	prey, err := registry.CreatePrey(bc.Prey)
	if err != nil {
		return nil, nil, nil, err
	}
	return env, hunter, prey, nil
}

func playJobs(ctx context.Context, env *Env, hunter registry.Hunter, prey registry.Prey, bc BatchConfig, jobs <-chan int, out chan<- outcome) {
	for i := range jobs {
		var buf *bufferRecorder
		var rec Recorder
		if bc.Recorder != nil {
			buf = &bufferRecorder{}
			rec = buf
		}

		res, err := Run(ctx, env, hunter, prey, bc.Seed+int64(i), rec)
		res.Episode = i

		o := outcome{res: res, err: err}
		if buf != nil {
			o.ticks = buf.ticks
		}
		select {
		case out <- o:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// deliver replays a worker's buffered ticks into the shared recorder and
// saves the result.
func deliver(rec Recorder, sink ResultSaver, out outcome) error {
	if rec != nil {
		for _, tr := range out.ticks {
			if err := rec.Record(tr); err != nil {
				return fmt.Errorf("episode: record episode %d: %w", out.res.Episode, err)
			}
		}
		if err := rec.EndEpisode(out.res); err != nil {
			return fmt.Errorf("episode: end episode %d: %w", out.res.Episode, err)
		}
	}
	if sink != nil {
		if err := sink.SaveResult(out.res); err != nil {
			return fmt.Errorf("episode: save episode %d: %w", out.res.Episode, err)
		}
	}
	return nil
}

func summarize(s *BatchSummary) {
	sort.Slice(s.Results, func(i, j int) bool {
		return s.Results[i].Episode < s.Results[j].Episode
	})

	total := 0
	for _, r := range s.Results {
		if r.Captured {
			s.Captures++
		}
		if r.Truncated {
			s.Truncated++
		}
		total += r.Ticks
	}
	if len(s.Results) > 0 {
		s.MeanTicks = float64(total) / float64(len(s.Results))
	}
}

// bufferRecorder keeps one episode's ticks in memory until the collector
// can replay them.
type bufferRecorder struct {
	ticks []TickRecord
}

func (b *bufferRecorder) Record(r TickRecord) error {
	b.ticks = append(b.ticks, r)
	return nil
}

func (b *bufferRecorder) EndEpisode(Result) error { return nil }
