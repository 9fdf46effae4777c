package simulation

import (
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/swarm"
)

// Snapshot is what the swarm actor hands to renderers after each frame.
// Agents is an independent copy, sorted back to front.
type Snapshot struct {
	Frame         uint64
	Agents        []swarm.Agent
	Bounds        swarm.Bounds
	Stats         swarm.FrameStats
	Rule          string
	Mode          swarm.ReferenceMode
	ForceConstant float64
}

// SwarmActor owns the authoritative swarm state. Only its Receive touches it.
type SwarmActor struct {
	cfg        *Config
	start      time.Time
	engine     *swarm.Engine
	state      *swarm.State
	snapshotCh chan<- *Snapshot
	logger     golog.Logger
	lastTick   time.Time

	// --- Benchmark Stats ---
	framesSinceLog int
	lastLogTime    time.Time
}

// NewSwarmActor creates the swarm logic unit. Agent clocks start at start.
func NewSwarmActor(snapshotCh chan<- *Snapshot, cfg *Config, start time.Time) *SwarmActor {
	return &SwarmActor{
		cfg:        cfg,
		start:      start,
		snapshotCh: snapshotCh,
	}
}

// PreStart builds the population. A bad configuration fails the spawn.
func (a *SwarmActor) PreStart(ctx *actor.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.logger = ctx.ActorSystem().Logger()
	a.lastLogTime = time.Now()
	return a.populate(a.start, a.cfg.Params())
}

// populate replaces the swarm with a fresh one drawn from the configured seed.
func (a *SwarmActor) populate(now time.Time, params swarm.Params) error {
	rule, err := swarm.NewRule(a.cfg.InfluenceRule)
	if err != nil {
		return err
	}
	src := swarm.NewUniformSource(a.cfg.Seed, a.cfg.VelocityMin, a.cfg.VelocityMax)
	state, err := swarm.NewState(a.cfg.Settings(), src, now)
	if err != nil {
		return fmt.Errorf("failed to create swarm: %w", err)
	}
	a.engine = swarm.NewEngine(rule, src, swarm.WithParams(params), swarm.WithLogger(a.logger))
	a.state = state
	a.lastTick = now
	return nil
}

func (a *SwarmActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("Swarm started: %d fireflies, %s rule, %s reference",
			len(a.state.Agents), a.engine.Rule().Name(), a.state.Mode)

	case *timestamppb.Timestamp:
		a.lastTick = msg.AsTime()
		stats := a.engine.Step(a.state, a.lastTick)
		a.logBenchmarks(ctx, stats)
		a.pushSnapshot(stats)
		ctx.Response(frameAck(stats.Frame))

	case *structpb.Struct:
		a.applyTuning(ctx, msg)

	default:
		ctx.Unhandled()
	}
}

func (a *SwarmActor) PostStop(ctx *actor.Context) error {
	if a.state != nil {
		ctx.ActorSystem().Logger().Infof("Swarm stopped after %d frames", a.state.Frame)
	}
	return nil
}

func (a *SwarmActor) applyTuning(ctx *actor.ReceiveContext, msg *structpb.Struct) {
	for key, value := range msg.GetFields() {
		switch key {
		case TuningForceConstant:
			k := value.GetNumberValue()
			a.engine.SetForceConstant(k)
			ctx.Logger().Debugf("force constant set to %g", a.engine.Params().ForceConstant)
		case TuningReset:
			if !value.GetBoolValue() {
				continue
			}
			if err := a.populate(a.lastTick, a.engine.Params()); err != nil {
				ctx.Logger().Errorf("reset failed: %v", err)
				continue
			}
			ctx.Logger().Infof("Swarm reset: %d fireflies", len(a.state.Agents))
		default:
			ctx.Logger().Warnf("ignoring unknown tuning key %q", key)
		}
	}
}

func (a *SwarmActor) logBenchmarks(ctx *actor.ReceiveContext, stats swarm.FrameStats) {
	a.framesSinceLog++
	if time.Since(a.lastLogTime) >= 5*time.Second {
		ctx.Logger().Infof("📊 %d frames/5s | frame %d | wanderers %d | brightness %.1f (%.0f..%.0f)",
			a.framesSinceLog, stats.Frame, stats.Wanderers,
			stats.MeanBrightness, stats.MinBrightness, stats.MaxBrightness)
		a.framesSinceLog = 0
		a.lastLogTime = time.Now()
	}
}

func (a *SwarmActor) pushSnapshot(stats swarm.FrameStats) {
	select {
	case a.snapshotCh <- a.buildSnapshot(stats):
	default:
		// renderer busy, skip frame
	}
}

func (a *SwarmActor) buildSnapshot(stats swarm.FrameStats) *Snapshot {
	return &Snapshot{
		Frame:         a.state.Frame,
		Agents:        a.state.Snapshot(),
		Bounds:        a.state.Bounds,
		Stats:         stats,
		Rule:          a.engine.Rule().Name(),
		Mode:          a.state.Mode,
		ForceConstant: a.engine.Params().ForceConstant,
	}
}
