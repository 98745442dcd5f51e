// Package render defines the drawing surface the simulation renders onto.
// Hosts implement Canvas for their output device; the simulation only
// ever issues filled rectangles and text in playfield units.
package render

import "github.com/vovakirdan/tui-invaders/internal/core"

// Align controls how text is positioned relative to its x coordinate.
type Align int

const (
	AlignLeft   Align = iota // x is the left edge
	AlignCenter              // x is the horizontal center
)

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Size  float64 // Nominal glyph height in playfield units
	Color core.Color
	Align Align
}

// Fill describes how a rectangle is filled.
type Fill struct {
	Color core.Color
	// Detail marks a decoration drawn on top of a body. Canvases too coarse
	// for nested rectangles may render it as a texture instead.
	Detail bool
}

// Solid returns a body fill of the given color.
func Solid(c core.Color) Fill {
	return Fill{Color: c}
}

// Detail returns a decoration fill of the given color.
func Detail(c core.Color) Fill {
	return Fill{Color: c, Detail: true}
}

// Canvas is a drawing surface. Coordinates are playfield units with the
// origin at the top-left; text y is the baseline.
type Canvas interface {
	FillRect(r core.Rect, f Fill)
	DrawText(x, y float64, text string, style TextStyle)
}
