package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelMargin  = 10.0
	titleHeight  = 25.0
	labelHeight  = 15.0
	widgetMargin = 8.0
)

// Panel stacks labelled widgets vertically inside a translucent box.
type Panel struct {
	Title   string
	X, Y    float64
	Width   float64
	Visible bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	widgets []Widget
	labels  []string
}

func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Visible:     true,
		BGColor:     color.RGBA{R: 20, G: 20, B: 30, A: 200},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

func (p *Panel) AddSlider(label string, lo, hi, value float64) *Slider {
	s := NewSlider(0, 0, p.Width-2*panelMargin, label, lo, hi, value)
	p.add(label, s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(0, 0, label, value)
	p.add(label, c)
	return c
}

// AddButton adds a button; its label is drawn on the button itself.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(0, 0, p.Width-2*panelMargin, label, onClick)
	p.add("", b)
	return b
}

func (p *Panel) add(label string, w Widget) {
	p.widgets = append(p.widgets, w)
	p.labels = append(p.labels, label)
	p.layout()
}

// layout places every widget below its label, top to bottom.
func (p *Panel) layout() {
	y := p.Y + titleHeight
	for i, w := range p.widgets {
		if p.labels[i] != "" {
			y += labelHeight
		}
		f := w.frame()
		f.X, f.Y = p.X+panelMargin, y
		y += f.H + widgetMargin
	}
}

// Height is the total height of the panel.
func (p *Panel) Height() float64 {
	h := titleHeight
	for i, w := range p.widgets {
		if p.labels[i] != "" {
			h += labelHeight
		}
		h += w.frame().H + widgetMargin
	}
	return h
}

// Update handles input for all widgets. A hidden panel ignores input.
func (p *Panel) Update() { p.handle(CurrentPointer()) }

func (p *Panel) handle(ptr Pointer) {
	if !p.Visible {
		return
	}
	for _, w := range p.widgets {
		w.handle(ptr)
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	h := p.Height()
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(h), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelMargin), int(p.Y+5))

	for i, w := range p.widgets {
		if p.labels[i] != "" {
			ebitenutil.DebugPrintAt(screen, p.labels[i], int(p.X+panelMargin), int(w.frame().Y-labelHeight))
		}
		w.Draw(screen)
	}
}

