package ui

import "testing"

func TestCheckbox_TogglesOncePerPress(t *testing.T) {
	var changes []bool
	c := NewCheckbox(10, 10, "Trails", false)
	c.OnChange = func(v bool) { changes = append(changes, v) }
	inside := Pointer{X: 15, Y: 15, Down: true}

	c.Update(inside)
	c.Update(inside)
	if !c.Value || len(changes) != 1 {
		t.Fatalf("Expected a single toggle while held, got value %v after %d changes", c.Value, len(changes))
	}

	c.Update(Pointer{X: 15, Y: 15})
	c.Update(inside)
	if c.Value || len(changes) != 2 || changes[1] {
		t.Errorf("Expected a second press to switch back off, got %v %v", c.Value, changes)
	}

	c.Update(Pointer{X: 100, Y: 100, Down: true})
	if c.Value {
		t.Errorf("Expected a press outside the box to be ignored")
	}
}

func TestUIPanel_Layout(t *testing.T) {
	p := NewUIPanel(10, 10, 220, 200, "Controls")
	clicks := 0
	var trails bool

	p.AddSection("Display")
	box := p.AddCheckbox("Trails", false, func(v bool) { trails = v })
	btn := p.AddButton("Reseed", func() { clicks++ })
	p.EndSection()

	if box.X != 20 || box.Y != 80 {
		t.Errorf("Expected checkbox at (20,80), got (%f,%f)", box.X, box.Y)
	}
	if btn.Y != 101 || btn.Width != 200 {
		t.Errorf("Expected button at y=101 with width 200, got y=%f w=%f", btn.Y, btn.Width)
	}

	p.Update(Pointer{X: 25, Y: 85, Down: true}, 0)
	if !trails {
		t.Errorf("Expected the checkbox callback to fire")
	}

	p.Update(Pointer{X: 100, Y: 110}, 0)
	p.Update(Pointer{X: 100, Y: 110, Down: true}, 0)
	p.Update(Pointer{X: 100, Y: 110, Down: true}, 0)
	if clicks != 1 {
		t.Errorf("Expected exactly one click, got %d", clicks)
	}

	p.Update(Pointer{}, -3)
	if p.ScrollOffset != 0 {
		t.Errorf("Expected no scrolling when the content fits, got %f", p.ScrollOffset)
	}
	if !p.Contains(Pointer{X: 50, Y: 50}) || p.Contains(Pointer{X: 300, Y: 50}) {
		t.Errorf("Unexpected hit test result")
	}
}
