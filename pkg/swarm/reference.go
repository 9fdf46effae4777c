package swarm

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/hsl"
)

// ReferenceMode selects what the one reserved agent is for the whole run.
type ReferenceMode string

const (
	// ReferenceBeacon is a stationary, fixed-brightness agent other agents can see.
	ReferenceBeacon ReferenceMode = "beacon"
	// ReferenceAverage is recomputed every frame as the mean of the regular agents.
	// It is display only: nobody observes it, so the swarm is never counted twice.
	ReferenceAverage ReferenceMode = "average"
)

// ParseReferenceMode validates a configured mode; empty means beacon.
func ParseReferenceMode(s string) (ReferenceMode, error) {
	switch ReferenceMode(s) {
	case ReferenceBeacon, "":
		return ReferenceBeacon, nil
	case ReferenceAverage:
		return ReferenceAverage, nil
	}
	return "", fmt.Errorf("unknown reference mode %q", s)
}

func (m ReferenceMode) role() Role {
	if m == ReferenceAverage {
		return RoleAverage
	}
	return RoleBeacon
}

// newBeacon places the beacon at the centre of the volume with zero velocity.
func newBeacon(id int, b Bounds, brightness float64) Agent {
	return Agent{
		ID:       id,
		Role:     RoleBeacon,
		Color:    hsl.Red.WithLuminance(brightness),
		Position: b.Center(),
	}
}

// updateAverage overwrites the average agent with the mean position, velocity and
// brightness of the regular agents. Reports false when there is no average agent.
func updateAverage(agents []Agent) bool {
	avg := -1
	var (
		pos, vel geometry.Vector3D
		lum      float64
		n        float64
	)
	for i := range agents {
		a := &agents[i]
		switch a.Role {
		case RoleAverage:
			avg = i
		case RoleRegular:
			pos = pos.Add(a.Position)
			vel = vel.Add(a.Velocity)
			lum += a.Brightness()
			n++
		}
	}
	if avg < 0 || n == 0 {
		return avg >= 0
	}
	agents[avg].Position = pos.Mul(1 / n)
	agents[avg].Velocity = vel.Mul(1 / n)
	agents[avg].Color = agents[avg].Color.WithLuminance(lum / n)
	return true
}
