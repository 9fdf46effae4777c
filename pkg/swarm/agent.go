package swarm

import (
	"time"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/hsl"
)

// Role tells the engine how an agent takes part in a frame.
type Role int

const (
	// RoleRegular agents are subjects of the influence rule and neighbours of everyone.
	RoleRegular Role = iota
	// RoleBeacon is the stationary reference signal: observed, never moved.
	RoleBeacon
	// RoleAverage summarizes the swarm for display: neither observed nor moved by the rule.
	RoleAverage
)

func (r Role) String() string {
	switch r {
	case RoleRegular:
		return "regular"
	case RoleBeacon:
		return "beacon"
	case RoleAverage:
		return "average"
	}
	return "unknown"
}

// Subject reports whether the influence rule updates agents with this role.
func (r Role) Subject() bool { return r == RoleRegular }

// Observable reports whether agents with this role count as neighbours.
func (r Role) Observable() bool { return r != RoleAverage }

// Agent is one firefly. Brightness is the luminance of its colour.
type Agent struct {
	ID         int
	Role       Role
	Color      hsl.HSL
	Position   geometry.Vector3D
	Velocity   geometry.Vector3D
	LastUpdate time.Time
}

// Brightness returns the agent luminance in [0,100].
func (a Agent) Brightness() float64 {
	return a.Color.Luminance
}

// Elapsed returns the time since the agent was last updated, never negative.
func (a Agent) Elapsed(now time.Time) time.Duration {
	if d := now.Sub(a.LastUpdate); d > 0 {
		return d
	}
	return 0
}
