package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/swarm"
)

const (
	// FrameInterval is the simulated time between two frames.
	FrameInterval = time.Second / 60
	askTimeout    = 5 * time.Second
)

// SpawnSwarm starts a swarm actor under a unique name. Its snapshots go to the returned channel.
func SpawnSwarm(ctx context.Context, system actor.ActorSystem, cfg *Config, start time.Time) (*actor.PID, <-chan *Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	snapshotCh := make(chan *Snapshot, 1)
	name := "swarm-" + uuid.NewString()
	pid, err := system.Spawn(ctx, name, NewSwarmActor(snapshotCh, cfg, start))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to spawn swarm: %w", err)
	}
	return pid, snapshotCh, nil
}

// StepSwarm advances the swarm actor to now and returns the frame number it reached.
func StepSwarm(ctx context.Context, pid *actor.PID, now time.Time) (uint64, error) {
	resp, err := actor.Ask(ctx, pid, NewTick(now), askTimeout)
	if err != nil {
		return 0, err
	}
	ack, ok := resp.(*wrapperspb.UInt64Value)
	if !ok {
		return 0, fmt.Errorf("unexpected reply %T to tick", resp)
	}
	return ack.GetValue(), nil
}

// RunHeadless steps a fresh swarm for the given number of frames on a manual
// clock advancing FrameInterval per frame, and returns the last snapshot.
func RunHeadless(ctx context.Context, system actor.ActorSystem, cfg *Config, frames int, logger golog.Logger) (*Snapshot, error) {
	if frames < 0 {
		return nil, errors.New("frames must not be negative")
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}
	clock := swarm.NewManualClock(time.Unix(0, 0).UTC())
	pid, snapshots, err := SpawnSwarm(ctx, system, cfg, clock.Now())
	if err != nil {
		return nil, err
	}

	var last *Snapshot
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		frame, err := StepSwarm(ctx, pid, clock.Advance(FrameInterval))
		if err != nil {
			return last, fmt.Errorf("frame %d: %w", i+1, err)
		}
		select {
		case snap := <-snapshots:
			last = snap
		default:
		}
		if last != nil && frame%60 == 0 {
			logger.Infof("frame %d: wanderers %d, mean brightness %.2f",
				frame, last.Stats.Wanderers, last.Stats.MeanBrightness)
		}
	}
	logger.Debugf("headless run finished after %d frames", frames)
	return last, nil
}
