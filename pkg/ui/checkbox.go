package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Pointer is the mouse state widgets react to during one update.
type Pointer struct {
	X, Y float64
	Down bool // left button held
}

// CurrentPointer reads the mouse state from ebiten.
func CurrentPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	return Pointer{X: float64(mx), Y: float64(my), Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)}
}

// over reports whether the pointer is inside the w x h box at (x, y).
func (p Pointer) over(x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}

// Checkbox is a simple UI widget for boolean values
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	OnChange func(bool) // called after every toggle
	clicked  bool       // Track if already clicked this frame
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16, // Default size
	}
}

// Update toggles the value once per press of the pointer over the box.
func (c *Checkbox) Update(p Pointer) {
	if p.Down && p.over(c.X, c.Y, c.Size, c.Size) {
		if !c.clicked {
			c.Value = !c.Value
			c.clicked = true
			if c.OnChange != nil {
				c.OnChange(c.Value)
			}
		}
	} else {
		c.clicked = false
	}
}

// Draw renders the checkbox
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 163, G: 190, B: 140, A: 255},
			true)
	}
}
