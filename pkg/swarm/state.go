package swarm

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/hsl"
)

// MinAgents is one regular agent plus the reference agent.
const MinAgents = 2

// ErrTooFewAgents is returned when a swarm cannot hold a regular and a reference agent.
var ErrTooFewAgents = errors.New("swarm needs at least two agents")

// Settings describe the population created at start.
type Settings struct {
	Bounds           Bounds
	Count            int
	Mode             ReferenceMode
	BeaconBrightness float64
}

// State is the agent store: a fixed-size collection plus the frame counter.
// It is owned by one driver; the engine borrows it for the duration of a Step.
type State struct {
	Agents []Agent
	Bounds Bounds
	Mode   ReferenceMode
	Frame  uint64
}

// NewState creates Count−1 regular agents with random position, velocity and
// brightness, and one reference agent. Every clock starts at now.
func NewState(s Settings, src Source, now time.Time) (*State, error) {
	if s.Count < MinAgents {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewAgents, s.Count)
	}
	mode, err := ParseReferenceMode(string(s.Mode))
	if err != nil {
		return nil, err
	}

	agents := make([]Agent, 0, s.Count)
	for id := 0; id < s.Count-1; id++ {
		agents = append(agents, Agent{
			ID:    id,
			Role:  RoleRegular,
			Color: hsl.Yellow.WithLuminance(src.Brightness()),
			Position: geometry.Vector3D{
				X: src.Coordinate(s.Bounds.Width),
				Y: src.Coordinate(s.Bounds.Height),
				Z: src.Coordinate(s.Bounds.Depth),
			},
			Velocity:   src.Velocity(),
			LastUpdate: now,
		})
	}

	ref := newBeacon(s.Count-1, s.Bounds, s.BeaconBrightness)
	ref.Role = mode.role()
	ref.LastUpdate = now
	agents = append(agents, ref)

	st := &State{Agents: agents, Bounds: s.Bounds, Mode: mode}
	updateAverage(st.Agents)
	st.SortByDepth()
	return st, nil
}

// Snapshot returns a copy of the agents that later mutations cannot reach.
func (s *State) Snapshot() []Agent {
	return slices.Clone(s.Agents)
}

// SortByDepth orders all agents farthest first (descending Z) for back-to-front drawing.
func (s *State) SortByDepth() {
	slices.SortFunc(s.Agents, func(a, b Agent) int {
		return cmp.Compare(b.Position.Z, a.Position.Z)
	})
}

// Reference returns the reserved agent.
func (s *State) Reference() (Agent, bool) {
	for _, a := range s.Agents {
		if a.Role != RoleRegular {
			return a, true
		}
	}
	return Agent{}, false
}

// ByID returns the agent with the given id.
func (s *State) ByID(id int) (Agent, bool) {
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return Agent{}, false
}
