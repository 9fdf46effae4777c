package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is anything the Panel can lay out, update and draw.
type Widget interface {
	// handle reacts to the pointer state of the current frame.
	handle(p Pointer)
	Draw(screen *ebiten.Image)
	// frame is the widget hit box, label excluded. The panel positions it.
	frame() *rect
}

// Pointer is the mouse state sampled once per frame.
type Pointer struct {
	X, Y    float64
	Pressed bool
}

// CurrentPointer reads the cursor and the left mouse button.
func CurrentPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// rect is an axis aligned hit box.
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// latch turns a held button into a single click.
type latch struct {
	down bool
}

func (l *latch) fire(over, pressed bool) bool {
	if over && pressed {
		if l.down {
			return false
		}
		l.down = true
		return true
	}
	l.down = false
	return false
}
