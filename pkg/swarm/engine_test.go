package swarm

import (
	"cmp"
	"math"
	"slices"
	"testing"
	"time"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameTime = 16 * time.Millisecond

func newRandomState(t testing.TB, mode ReferenceMode, count int, seed uint64) *State {
	t.Helper()
	st, err := NewState(Settings{
		Bounds:           testBounds,
		Count:            count,
		Mode:             mode,
		BeaconBrightness: 100,
	}, NewUniformSource(seed, -10.5, 10.5), t0)
	require.NoError(t, err)
	return st
}

func isDepthSorted(agents []Agent) bool {
	return slices.IsSortedFunc(agents, func(a, b Agent) int {
		return cmp.Compare(b.Position.Z, a.Position.Z)
	})
}

func TestNewState(t *testing.T) {
	st := newRandomState(t, ReferenceBeacon, 101, 201)

	require.Len(t, st.Agents, 101)
	assert.True(t, isDepthSorted(st.Agents))

	ref, ok := st.Reference()
	require.True(t, ok)
	assert.Equal(t, RoleBeacon, ref.Role)
	assert.Equal(t, 100, ref.ID)
	assert.Equal(t, 100.0, ref.Brightness())
	assert.True(t, ref.Velocity.Eq(vec(0, 0, 0)))
	assert.True(t, ref.Position.Eq(testBounds.Center()))

	ids := make(map[int]bool)
	for _, a := range st.Agents {
		ids[a.ID] = true
		assert.True(t, testBounds.Contains(a.Position))
		assert.Equal(t, math.Trunc(a.Brightness()), a.Brightness(), "initial brightness is an integer")
		assert.Equal(t, t0, a.LastUpdate)
		if a.Role == RoleRegular {
			for _, c := range []float64{a.Velocity.X, a.Velocity.Y, a.Velocity.Z} {
				assert.GreaterOrEqual(t, c, -10.5)
				assert.Less(t, c, 10.5)
			}
		}
	}
	assert.Len(t, ids, 101)
}

func TestNewState_Errors(t *testing.T) {
	_, err := NewState(Settings{Bounds: testBounds, Count: 1}, &fixedSource{}, t0)
	assert.ErrorIs(t, err, ErrTooFewAgents)

	_, err = NewState(Settings{Bounds: testBounds, Count: 3, Mode: "lighthouse"}, &fixedSource{}, t0)
	assert.Error(t, err)
}

func TestNewState_Deterministic(t *testing.T) {
	a := newRandomState(t, ReferenceBeacon, 20, 42)
	b := newRandomState(t, ReferenceBeacon, 20, 42)
	assert.Empty(t, gocmp.Diff(a.Agents, b.Agents))
}

// Brightness and positions stay in range every frame, and the collection stays sorted.
func TestStep_Invariants(t *testing.T) {
	for _, mode := range []ReferenceMode{ReferenceBeacon, ReferenceAverage} {
		for _, ruleName := range []string{RulePairwise, RuleCentroid} {
			t.Run(string(mode)+"/"+ruleName, func(t *testing.T) {
				st := newRandomState(t, mode, 40, 201)
				rule, err := NewRule(ruleName)
				require.NoError(t, err)
				engine := NewEngine(rule, NewUniformSource(7, -10.5, 10.5))
				clock := NewManualClock(t0)

				for frame := 1; frame <= 300; frame++ {
					stats := engine.Step(st, clock.Advance(frameTime))
					require.Equal(t, uint64(frame), stats.Frame)
					require.Len(t, st.Agents, 40)
					require.True(t, isDepthSorted(st.Agents), "frame %d not depth sorted", frame)
					for _, a := range st.Agents {
						require.GreaterOrEqual(t, a.Brightness(), 0.0)
						require.LessOrEqual(t, a.Brightness(), 100.0)
						require.True(t, a.Position.IsFinite() && a.Velocity.IsFinite())
						require.True(t, testBounds.Contains(a.Position), "frame %d: %v outside", frame, a.Position)
					}
				}
			})
		}
	}
}

func TestStep_OrderIndependent(t *testing.T) {
	for _, ruleName := range []string{RulePairwise, RuleCentroid} {
		t.Run(ruleName, func(t *testing.T) {
			forward := newRandomState(t, ReferenceBeacon, 25, 9)
			backward := &State{
				Agents: slices.Clone(forward.Agents),
				Bounds: forward.Bounds,
				Mode:   forward.Mode,
			}
			slices.Reverse(backward.Agents)

			rule, err := NewRule(ruleName)
			require.NoError(t, err)
			e1 := NewEngine(rule, NewUniformSource(3, -10.5, 10.5))
			e2 := NewEngine(rule, NewUniformSource(3, -10.5, 10.5))
			now := t0.Add(250 * time.Millisecond)

			e1.Step(forward, now)
			e2.Step(backward, now)

			byID := cmpopts.SortSlices(func(a, b Agent) bool { return a.ID < b.ID })
			approx := cmpopts.EquateApprox(0, 1e-9)
			assert.Empty(t, gocmp.Diff(forward.Agents, backward.Agents, byID, approx))
		})
	}
}

func TestStep_CoincidentAgents(t *testing.T) {
	for _, rule := range []Rule{PairwiseRule{}, CentroidRule{}} {
		t.Run(rule.Name(), func(t *testing.T) {
			st := &State{
				Agents: []Agent{
					firefly(0, 30, vec(100, 100, 100)),
					firefly(1, 30, vec(100, 100, 100)),
					firefly(2, 70, vec(100, 100, 100)),
					beaconAt(3, 100, vec(100, 100, 100)),
				},
				Bounds: testBounds,
				Mode:   ReferenceBeacon,
			}
			engine := NewEngine(rule, &fixedSource{velocity: vec(1, 1, 1)})

			stats := engine.Step(st, t0.Add(time.Second))

			assert.Zero(t, stats.Recovered)
			for _, a := range st.Agents {
				assert.True(t, a.Position.IsFinite(), "agent %d position %v", a.ID, a.Position)
				assert.True(t, a.Velocity.IsFinite(), "agent %d velocity %v", a.ID, a.Velocity)
				assert.False(t, math.IsNaN(a.Brightness()))
			}
		})
	}
}

func TestStep_RecoversCorruptedAgent(t *testing.T) {
	broken := firefly(0, 30, vec(math.NaN(), 10, 10))
	st := &State{
		Agents: []Agent{broken, firefly(1, 60, vec(20, 20, 20)), beaconAt(2, 100, testBounds.Center())},
		Bounds: testBounds,
		Mode:   ReferenceBeacon,
	}
	engine := NewEngine(PairwiseRule{}, &fixedSource{})

	stats := engine.Step(st, t0.Add(time.Second))

	assert.Equal(t, 1, stats.Recovered)
	for _, a := range st.Agents {
		assert.True(t, a.Position.IsFinite())
		assert.True(t, testBounds.Contains(a.Position))
	}
}

func TestStep_ElapsedTimeIsPerAgent(t *testing.T) {
	fresh := firefly(0, 10, vec(100, 100, 100))
	fresh.Velocity = vec(5, 0, 0)
	stale := firefly(1, 10, vec(300, 100, 100))
	stale.Velocity = vec(5, 0, 0)
	now := t0.Add(2 * time.Second)
	fresh.LastUpdate = now.Add(-time.Second)

	st := &State{
		Agents: []Agent{fresh, stale, beaconAt(2, 100, vec(200, 400, 100))},
		Bounds: testBounds,
		Mode:   ReferenceBeacon,
	}
	NewEngine(PairwiseRule{}, &fixedSource{}, WithParams(Params{ForceConstant: 0})).Step(st, now)

	gotFresh, _ := st.ByID(0)
	gotStale, _ := st.ByID(1)
	assert.InDelta(t, 105, gotFresh.Position.X, 1e-9)
	assert.InDelta(t, 310, gotStale.Position.X, 1e-9)
	assert.Equal(t, now, gotFresh.LastUpdate)
	assert.Equal(t, now, gotStale.LastUpdate)
}

// Three fireflies at 10, 50 and 90 around a beacon at 90.
func TestStep_ThreeFirefliesAndBeacon(t *testing.T) {
	dim := firefly(0, 10, vec(100, 300, 250))
	mid := firefly(1, 50, vec(200, 200, 250))
	bright := firefly(2, 90, vec(300, 300, 250))
	beacon := beaconAt(3, 90, vec(250, 350, 250))
	st := &State{Agents: []Agent{dim, mid, bright, beacon}, Bounds: testBounds, Mode: ReferenceBeacon}

	src := &fixedSource{velocity: vec(1, 2, 3)}
	stats := NewEngine(PairwiseRule{}, src).Step(st, t0.Add(time.Second))

	assert.Equal(t, 1, stats.Wanderers)
	assert.Equal(t, 1, src.velocityCalls)

	gotDim, _ := st.ByID(0)
	towardBrighter := vec(250, 850.0/3, 250).Sub(dim.Position) // centroid of mid, bright, beacon
	assert.NotZero(t, gotDim.Velocity.LenSqr())
	assert.Greater(t, gotDim.Velocity.Dot(towardBrighter), 0.0)
	assert.Greater(t, gotDim.Brightness(), 10.0)

	gotMid, _ := st.ByID(1)
	towardBrighter = vec(275, 325, 250).Sub(mid.Position) // centroid of bright and beacon
	assert.NotZero(t, gotMid.Velocity.LenSqr())
	assert.Greater(t, gotMid.Velocity.Dot(towardBrighter), 0.0)

	// nobody is strictly brighter than 90: it wanders
	gotBright, _ := st.ByID(2)
	assert.True(t, gotBright.Velocity.Eq(vec(1, 2, 3)), "got %v", gotBright.Velocity)
	assert.True(t, gotBright.Position.Eq(vec(301, 302, 253)), "got %v", gotBright.Position)
	assert.Less(t, gotBright.Brightness(), 90.0)

	gotBeacon, _ := st.ByID(3)
	assert.True(t, gotBeacon.Position.Eq(beacon.Position))
	assert.True(t, gotBeacon.Velocity.Eq(vec(0, 0, 0)))
	assert.Equal(t, 90.0, gotBeacon.Brightness())
}

func TestStep_BeaconNeverMoves(t *testing.T) {
	st := newRandomState(t, ReferenceBeacon, 30, 11)
	before, _ := st.Reference()
	engine := NewEngine(PairwiseRule{}, NewUniformSource(5, -10.5, 10.5))
	clock := NewManualClock(t0)

	for range 100 {
		engine.Step(st, clock.Advance(frameTime))
	}

	after, _ := st.Reference()
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, after.Position.Eq(before.Position))
	assert.True(t, after.Velocity.Eq(vec(0, 0, 0)))
	assert.Equal(t, before.Brightness(), after.Brightness())
}

func TestStep_AverageAgentTracksSwarm(t *testing.T) {
	st := newRandomState(t, ReferenceAverage, 12, 5)
	engine := NewEngine(PairwiseRule{}, NewUniformSource(5, -10.5, 10.5))

	engine.Step(st, t0.Add(100*time.Millisecond))

	var pos = vec(0, 0, 0)
	var lum float64
	for _, a := range st.Agents {
		if a.Role == RoleRegular {
			pos = pos.Add(a.Position)
			lum += a.Brightness()
		}
	}
	avg, ok := st.Reference()
	require.True(t, ok)
	assert.Equal(t, RoleAverage, avg.Role)
	assert.True(t, avg.Position.Eq(pos.Mul(1.0/11)), "got %v", avg.Position)
	assert.InDelta(t, lum/11, avg.Brightness(), 1e-9)
}

func TestEngine_SetForceConstant(t *testing.T) {
	e := NewEngine(PairwiseRule{}, &fixedSource{})
	assert.Equal(t, DefaultForceConstant, e.Params().ForceConstant)

	e.SetForceConstant(250)
	assert.Equal(t, 250.0, e.Params().ForceConstant)

	e.SetForceConstant(math.NaN())
	assert.Equal(t, 250.0, e.Params().ForceConstant)
}

func BenchmarkStep_101(b *testing.B) {
	st := newRandomState(b, ReferenceBeacon, 101, 201)
	engine := NewEngine(PairwiseRule{}, NewUniformSource(201, -10.5, 10.5))
	clock := NewManualClock(t0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Step(st, clock.Advance(frameTime))
	}
}
