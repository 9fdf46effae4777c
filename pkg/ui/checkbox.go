package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox is a simple UI widget for boolean values
type Checkbox struct {
	Label string
	Value bool
	box   rect
	click latch
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{Label: label, Value: value, box: rect{X: x, Y: y, W: 16, H: 16}}
}

// Update toggles the value once per click.
func (c *Checkbox) Update() { c.handle(CurrentPointer()) }

func (c *Checkbox) handle(p Pointer) {
	if c.click.fire(c.box.contains(p.X, p.Y), p.Pressed) {
		c.Value = !c.Value
	}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	b := c.box
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	if c.Value {
		vector.FillRect(screen, float32(b.X+3), float32(b.Y+3), float32(b.W-6), float32(b.H-6),
			color.RGBA{R: 230, G: 210, B: 90, A: 255}, true)
	}
}

func (c *Checkbox) frame() *rect { return &c.box }
