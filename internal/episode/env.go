// Package episode wraps the engine in a reset/step environment and plays
// hunter and prey policies against each other, one episode at a time or in
// parallel batches.
package episode

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evasion/internal/config"
	"github.com/vovakirdan/evasion/internal/evasion"
)

// Observation is what a learning agent sees after each step.
type Observation struct {
	Hunter    evasion.PosVel
	Prey      evasion.Point
	WallTimer int
	Board     [][]bool // [y][x]; nil when board observations are disabled
}

// Info carries diagnostics that are not part of the observation.
type Info struct {
	Distance float64
}

// StepResult is the outcome of one Step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool // Prey captured
	Truncated   bool // Tick limit reached
	Info        Info
}

// Env owns one engine at a time and rebuilds it on every Reset, so no game
// state outlives its episode.
type Env struct {
	cfg    config.EvasionConfig
	game   *evasion.Game
	rng    *rand.Rand
	logger *log.Logger

	preyMove     evasion.Point
	observeBoard bool
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithEnvLogger passes l to every engine the environment creates.
func WithEnvLogger(l *log.Logger) EnvOption {
	return func(e *Env) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBoardObservations controls whether observations carry a board copy.
// Batch runs turn it off; copying the grid every tick dominates their cost.
func WithBoardObservations(on bool) EnvOption {
	return func(e *Env) {
		e.observeBoard = on
	}
}

// NewEnv validates cfg and prepares the first episode with seed 0.
func NewEnv(cfg config.EvasionConfig, opts ...EnvOption) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Env{
		cfg:          cfg,
		logger:       log.New(io.Discard),
		observeBoard: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if _, err := e.reset(0); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a fresh episode. The seed drives the prey's default random walk.
func (e *Env) Reset(seed int64) Observation {
	obs, err := e.reset(seed)
	if err != nil {
		// The config was validated in NewEnv, so the engine cannot refuse it.
		panic(err)
	}
	return obs
}

func (e *Env) reset(seed int64) (Observation, error) {
	g, err := evasion.New(e.cfg.Engine(), evasion.WithLogger(e.logger))
	if err != nil {
		return Observation{}, err
	}
	e.game = g
	e.rng = rand.New(rand.NewSource(seed))
	e.preyMove = evasion.Point{}
	return e.observe(), nil
}

// Step applies the hunter's action and the prey's move, then advances one tick.
//
// A nil preyMove keeps the prey's previous move, redrawn uniformly from
// {-1,0,1}² with the configured turn chance. Removal indices that address no
// wall are dropped before the tick.
func (e *Env) Step(action evasion.HunterAction, preyMove *evasion.Point) StepResult {
	if preyMove != nil {
		e.preyMove = *preyMove
	} else if e.rng.Float64() < e.cfg.Episode.PreyTurnChance {
		e.preyMove = evasion.P(e.rng.Intn(3)-1, e.rng.Intn(3)-1)
	}

	action.Remove = e.validRemovals(action.Remove)
	captured := e.game.Apply(action, e.preyMove)

	res := StepResult{
		Observation: e.observe(),
		Terminated:  captured,
		Info:        Info{Distance: e.game.Distance()},
	}
	if captured {
		res.Reward = 1
	} else if limit := e.cfg.Episode.MaxTicks; limit > 0 && e.game.TickNum() >= limit {
		res.Truncated = true
	}
	return res
}

func (e *Env) validRemovals(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	n := e.game.WallCount()
	kept := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n {
			kept = append(kept, i)
		}
	}
	return kept
}

func (e *Env) observe() Observation {
	obs := Observation{
		Hunter:    e.game.Hunter(),
		Prey:      e.game.Prey(),
		WallTimer: e.game.WallTimer(),
	}
	if e.observeBoard {
		obs.Board = e.game.Board()
	}
	return obs
}

// Snapshot returns the current engine state for policies and recorders.
func (e *Env) Snapshot() evasion.Snapshot {
	return e.game.Snapshot()
}

// Game exposes the current engine, for rendering.
func (e *Env) Game() *evasion.Game {
	return e.game
}

// Config returns the environment's configuration.
func (e *Env) Config() config.EvasionConfig {
	return e.cfg
}

// PreyMove returns the move the prey will repeat if no policy overrides it.
func (e *Env) PreyMove() evasion.Point {
	return e.preyMove
}
