package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per click.
type Button struct {
	Label   string
	OnClick func()
	box     rect
	click   latch
	hover   bool
}

func NewButton(x, y, w float64, label string, onClick func()) *Button {
	return &Button{Label: label, OnClick: onClick, box: rect{X: x, Y: y, W: w, H: 20}}
}

func (b *Button) Update() { b.handle(CurrentPointer()) }

func (b *Button) handle(p Pointer) {
	b.hover = b.box.contains(p.X, p.Y)
	if b.click.fire(b.hover, p.Pressed) && b.OnClick != nil {
		b.OnClick()
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := color.RGBA{R: 80, G: 80, B: 60, A: 255}
	if b.hover {
		bg = color.RGBA{R: 120, G: 110, B: 60, A: 255}
	}
	r := b.box
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, true)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
		1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(r.X+6), int(r.Y+3))
}

func (b *Button) frame() *rect { return &b.box }
