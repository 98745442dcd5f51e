package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// OpKind identifies a recorded drawing primitive.
type OpKind int

const (
	OpFill OpKind = iota
	OpText
)

// Op is one recorded drawing call.
type Op struct {
	Kind  OpKind
	Rect  core.Rect // OpFill
	Fill  Fill      // OpFill
	X, Y  float64   // OpText
	Text  string    // OpText
	Style TextStyle // OpText
}

// String returns a compact description of the op, used in test failures.
func (o Op) String() string {
	if o.Kind == OpFill {
		return fmt.Sprintf("fill(%g,%g %gx%g c=%d detail=%t)",
			o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H, o.Fill.Color, o.Fill.Detail)
	}
	return fmt.Sprintf("text(%g,%g %q c=%d)", o.X, o.Y, o.Text, o.Style.Color)
}

// DisplayList is a Canvas that records every call in order.
// Used by render tests to assert draw order.
type DisplayList struct {
	ops []Op
}

// NewDisplayList creates an empty display list.
func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// FillRect records a fill.
func (d *DisplayList) FillRect(r core.Rect, f Fill) {
	d.ops = append(d.ops, Op{Kind: OpFill, Rect: r, Fill: f})
}

// DrawText records a text draw.
func (d *DisplayList) DrawText(x, y float64, text string, style TextStyle) {
	d.ops = append(d.ops, Op{Kind: OpText, X: x, Y: y, Text: text, Style: style})
}

// Ops returns a copy of the recorded calls.
func (d *DisplayList) Ops() []Op {
	return slices.Clone(d.ops)
}

// Len returns the number of recorded calls.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Reset discards every recorded call.
func (d *DisplayList) Reset() {
	d.ops = d.ops[:0]
}

// Equal reports whether two lists recorded the same calls in the same order.
func (d *DisplayList) Equal(other *DisplayList) bool {
	return slices.Equal(d.ops, other.ops)
}

// Texts returns the strings drawn, in order.
func (d *DisplayList) Texts() []string {
	var texts []string
	for _, op := range d.ops {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// String lists the recorded calls one per line.
func (d *DisplayList) String() string {
	var sb strings.Builder
	for i, op := range d.ops {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(op.String())
	}
	return sb.String()
}
