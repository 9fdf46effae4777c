package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	sliderTrack = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	sliderFill  = color.RGBA{R: 230, G: 210, B: 90, A: 255}
)

// Slider edits a float in [Min, Max] by clicking or dragging along it.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	box      rect
}

func NewSlider(x, y, w float64, label string, lo, hi, value float64) *Slider {
	if lo > hi {
		lo, hi = hi, lo
	}
	s := &Slider{Label: label, Min: lo, Max: hi, box: rect{X: x, Y: y, W: w, H: 14}}
	s.Value = s.clamp(value)
	return s
}

// Update reads the mouse and moves the value when the slider is pressed.
func (s *Slider) Update() { s.handle(CurrentPointer()) }

func (s *Slider) handle(p Pointer) {
	if !p.Pressed || !s.box.contains(p.X, p.Y) || s.box.W <= 0 {
		return
	}
	s.Value = s.clamp(s.Min + (p.X-s.box.X)/s.box.W*(s.Max-s.Min))
}

func (s *Slider) clamp(v float64) float64 {
	return max(s.Min, min(s.Max, v))
}

// Ratio is the position of Value along the track, in [0, 1].
func (s *Slider) Ratio() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

func (s *Slider) Draw(screen *ebiten.Image) {
	b := s.box
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), sliderTrack, true)
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W*s.Ratio()), float32(b.H), sliderFill, true)
}

func (s *Slider) frame() *rect { return &s.box }
