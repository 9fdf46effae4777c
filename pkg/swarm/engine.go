package swarm

import (
	"math"
	"slices"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
)

// FrameStats summarizes one Step.
type FrameStats struct {
	Frame          uint64
	Wanderers      int // agents with no brighter neighbour
	Recovered      int // agents rolled back after a non-finite integration
	MeanBrightness float64
	MinBrightness  float64
	MaxBrightness  float64
}

// Engine applies the influence rule, integration and boundary reflection.
type Engine struct {
	rule   Rule
	src    Source
	params Params
	logger golog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithParams overrides the default force constant and epsilon.
func WithParams(p Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l golog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds an engine around one rule and one random source.
func NewEngine(rule Rule, src Source, opts ...Option) *Engine {
	e := &Engine{
		rule:   rule,
		src:    src,
		params: DefaultParams(),
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.params.Epsilon <= 0 {
		e.params.Epsilon = DefaultEpsilon
	}
	return e
}

// Rule returns the influence rule used by this engine.
func (e *Engine) Rule() Rule { return e.rule }

// Params returns the current tuning.
func (e *Engine) Params() Params { return e.params }

// SetForceConstant changes K between frames.
func (e *Engine) SetForceConstant(k float64) {
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return
	}
	e.params.ForceConstant = k
}

// Step advances every agent to now and leaves the state depth sorted.
//
// All influences are computed from a snapshot taken before any agent moves, and
// the random draws are handed out in agent ID order, so the result does not depend
// on where agents sit in the collection.
func (e *Engine) Step(s *State, now time.Time) FrameStats {
	snapshot := s.Snapshot()

	influences := make([]Influence, len(snapshot))
	for i := range snapshot {
		if snapshot[i].Role.Subject() {
			influences[i] = e.rule.Influence(i, snapshot, e.params)
		}
	}

	order := make([]int, len(snapshot))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return snapshot[a].ID - snapshot[b].ID })

	stats := FrameStats{MinBrightness: math.Inf(1), MaxBrightness: math.Inf(-1)}
	var regular float64
	for _, i := range order {
		prev := snapshot[i]
		if !prev.Role.Subject() {
			s.Agents[i].LastUpdate = now
			continue
		}
		next, wandered, recovered := e.advance(prev, influences[i], now, s.Bounds)
		if wandered {
			stats.Wanderers++
		}
		if recovered {
			stats.Recovered++
			e.logger.Warnf("firefly %d produced a non-finite state, kept %s", prev.ID, prev.Position)
		}
		s.Agents[i] = next

		b := next.Brightness()
		stats.MeanBrightness += b
		stats.MinBrightness = math.Min(stats.MinBrightness, b)
		stats.MaxBrightness = math.Max(stats.MaxBrightness, b)
		regular++
	}
	if regular > 0 {
		stats.MeanBrightness /= regular
	} else {
		stats.MinBrightness, stats.MaxBrightness = 0, 0
	}

	updateAverage(s.Agents)
	s.SortByDepth()
	s.Frame++
	stats.Frame = s.Frame

	e.logger.Debugf("frame %d: %d wanderers, brightness mean %.2f [%.2f, %.2f]",
		stats.Frame, stats.Wanderers, stats.MeanBrightness, stats.MinBrightness, stats.MaxBrightness)
	return stats
}

// advance updates one agent from its pre-frame copy.
func (e *Engine) advance(a Agent, inf Influence, now time.Time, b Bounds) (next Agent, wandered, recovered bool) {
	next = a
	next.Color = a.Color.AdjustLuminance(inf.BrightnessDelta)

	acc := inf.Acceleration
	if !inf.HasBrighter {
		next.Velocity = e.src.Velocity()
		acc = geometry.Vector3D{}
		wandered = true
	}

	dt := a.Elapsed(now).Seconds()
	// position integrates with the velocity from before the acceleration is applied
	next.Position = next.Position.Add(next.Velocity.Mul(dt))
	next.Velocity = next.Velocity.Add(acc.Mul(dt))
	next.Position, next.Velocity = b.Reflect(next.Position, next.Velocity)
	next.LastUpdate = now

	if !next.Position.IsFinite() || !next.Velocity.IsFinite() {
		next.Position, next.Velocity = b.Reflect(a.Position, a.Velocity)
		if !next.Position.IsFinite() || !next.Velocity.IsFinite() {
			next.Position, next.Velocity = b.Center(), geometry.Vector3D{}
		}
		recovered = true
	}
	return next, wandered, recovered
}
