package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update(p Pointer)
	Draw(screen *ebiten.Image)
	GetHeight() float64
	moveTo(y float64)
}

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 20 // label above the box
}

func (c *CheckboxWrapper) moveTo(y float64) { c.Y = y + 15 }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 8
}

func (b *ButtonWrapper) moveTo(y float64) { b.Y = y }

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Title         string
	Widgets       []UIWidget
	Labels        []string // Labels drawn above widgets, empty for none
	ScrollOffset  float64  // Current scroll position

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
}

// PanelSection is a titled group of consecutive widgets.
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64, title string) *UIPanel {
	return &UIPanel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 46, G: 52, B: 64, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool, onChange func(bool)) *Checkbox {
	checkbox := NewCheckbox(p.X+10, 0, label, value)
	checkbox.OnChange = onChange
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a full width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, 0, p.Width-20, 20, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	if n := len(p.sections); n > 0 {
		p.sections[n-1].EndIndex = len(p.Widgets)
	}
	p.layout()
}

// Contains reports whether the pointer is over the panel.
func (p *UIPanel) Contains(ptr Pointer) bool {
	return ptr.over(p.X, p.Y, p.Width, p.Height)
}

// Update scrolls the panel by wheel notches and forwards the pointer to the widgets.
func (p *UIPanel) Update(ptr Pointer, wheel float64) {
	if wheel != 0 {
		p.ScrollOffset -= wheel * 20

		maxScroll := p.calculateTotalHeight() - p.Height + 40
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.ScrollOffset < 0 {
			p.ScrollOffset = 0
		}
		if p.ScrollOffset > maxScroll {
			p.ScrollOffset = maxScroll
		}
	}
	p.layout()

	for _, widget := range p.Widgets {
		widget.Update(ptr)
	}
}

// layout places every widget at its scrolled position.
func (p *UIPanel) layout() {
	y := p.Y + 30 - p.ScrollOffset
	idx := 0
	for _, section := range p.sections {
		y += 25
		for ; idx < section.EndIndex && idx < len(p.Widgets); idx++ {
			p.Widgets[idx].moveTo(y)
			y += p.Widgets[idx].GetHeight()
		}
	}
	for ; idx < len(p.Widgets); idx++ {
		p.Widgets[idx].moveTo(y)
		y += p.Widgets[idx].GetHeight()
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	currentY := p.Y + 30 - p.ScrollOffset
	widgetIdx := 0
	visible := func(y float64) bool { return y >= p.Y+25 && y <= p.Y+p.Height-10 }

	for _, section := range p.sections {
		if visible(currentY) {
			vector.FillRect(screen,
				float32(p.X+5), float32(currentY),
				float32(p.Width-10), 20,
				color.RGBA{R: 59, G: 66, B: 82, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, section.Title, int(p.X+10), int(currentY+3))
		}
		currentY += 25

		for ; widgetIdx < section.EndIndex && widgetIdx < len(p.Widgets); widgetIdx++ {
			widget := p.Widgets[widgetIdx]
			if visible(currentY) {
				if label := p.Labels[widgetIdx]; label != "" {
					ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(currentY))
				}
				widget.Draw(screen)
			}
			currentY += widget.GetHeight()
		}
	}
}

// calculateTotalHeight calculates the total content height
func (p *UIPanel) calculateTotalHeight() float64 {
	height := 30.0 + float64(len(p.sections))*25
	for _, widget := range p.Widgets {
		height += widget.GetHeight()
	}
	return height
}
