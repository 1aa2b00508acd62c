package ui

// Point is a position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// TooltipState is a snapshot of a tooltip.
type TooltipState struct {
	Show bool
	Text string
	X    int
	Y    int
}

// Tooltip tracks a single floating tooltip.
type Tooltip struct {
	state TooltipState
}

// ShowAt displays text at the pointer position.
func (t *Tooltip) ShowAt(at Point, text string) {
	t.state = TooltipState{Show: true, Text: text, X: at.X, Y: at.Y}
}

// Hide hides the tooltip. Text and position are kept.
func (t *Tooltip) Hide() {
	t.state.Show = false
}

// State returns the current tooltip state.
func (t *Tooltip) State() TooltipState {
	return t.state
}
