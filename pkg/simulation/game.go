package simulation

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tochemey/goakt/v3/actor"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/swarm"
	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/ui"
)

var background = color.RGBA{R: 5, G: 5, B: 15, A: 255}

// Game renders the swarm actor's snapshots and forwards panel edits to it.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	swarmPID   *actor.PID
	snapshotCh <-chan *Snapshot
	lastState  *Snapshot
	clock      swarm.Clock
	cfg        *Config

	// UI Controls
	panel        *ui.Panel
	widgetForce  *ui.Slider
	widgetRadius *ui.Slider
	widgetStats  *ui.Checkbox
	lastForce    float64
	resetPending bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64
}

func NewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	clock := swarm.SystemClock{}
	pid, snapshots, err := SpawnSwarm(ctx, system, cfg, clock.Now())
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		swarmPID:   pid,
		snapshotCh: snapshots,
		clock:      clock,
		cfg:        cfg,
		lastForce:  cfg.ForceConstant,
	}

	maxForce := max(4*swarm.DefaultForceConstant, 2*cfg.ForceConstant)
	g.panel = ui.NewPanel("Fireflies  [P] hide", 10, 10, 180)
	g.panel.Visible = cfg.DisplayPanel
	g.widgetForce = g.panel.AddSlider("Force Constant", 0, maxForce, cfg.ForceConstant)
	g.widgetRadius = g.panel.AddSlider("Circle Radius", 1, 12, cfg.CircleRadius)
	g.widgetStats = g.panel.AddCheckbox("Show Stats", cfg.DisplayStats)
	g.panel.AddButton("Reset Swarm", func() { g.resetPending = true })
	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.panel.Visible = !g.panel.Visible
	}
	g.panel.Update()

	if err := g.sendTuning(); err != nil {
		return err
	}

	if _, err := StepSwarm(g.ctx, g.swarmPID, g.clock.Now()); err != nil {
		return fmt.Errorf("swarm step failed: %w", err)
	}
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// keep the previous frame
	}
	return nil
}

func (g *Game) sendTuning() error {
	if g.widgetForce.Value != g.lastForce {
		msg, err := NewTuning(g.widgetForce.Value)
		if err != nil {
			return err
		}
		if err := actor.Tell(g.ctx, g.swarmPID, msg); err != nil {
			return fmt.Errorf("failed to send tuning: %w", err)
		}
		g.lastForce = g.widgetForce.Value
	}
	if g.resetPending {
		g.resetPending = false
		if err := actor.Tell(g.ctx, g.swarmPID, NewReset()); err != nil {
			return fmt.Errorf("failed to reset swarm: %w", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(background)
	if g.lastState != nil {
		// Agents arrive back to front, so nearer fireflies cover farther ones.
		radius := g.widgetRadius.Value
		for _, s := range swarm.Sprites(g.lastState.Agents, g.lastState.Bounds) {
			r := radius * s.Scale
			if r <= 0 {
				continue
			}
			vector.FillCircle(screen, float32(s.Center.X), float32(s.Center.Y), float32(r), s.Color, true)
		}
	}

	g.panel.Draw(screen)
	if g.widgetStats.Value {
		g.drawStats(screen)
	}
}

func (g *Game) drawStats(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f\nUpdate: %.2fms\nDraw:   %.2fms", ebiten.ActualFPS(), g.updateAvg, g.drawAvg)
	if st := g.lastState; st != nil {
		msg += fmt.Sprintf("\n\nFrame: %d\nRule: %s\nRef: %s\nK: %.1f\nWander: %d\nLum: %.1f",
			st.Frame, st.Rule, st.Mode, st.ForceConstant, st.Stats.Wanderers, st.Stats.MeanBrightness)
	}
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-130, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
