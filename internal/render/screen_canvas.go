package render

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Glyphs used by ScreenCanvas.
const (
	GlyphBody   = '█'
	GlyphDetail = '▓'
)

// ScreenCanvas scales the playfield onto a character Screen.
// A cell is covered by a rectangle when the cell's center lies inside it;
// a rectangle thinner than a cell along an axis covers the cell holding its center.
type ScreenCanvas struct {
	screen     *core.Screen
	cellW      float64 // Playfield units per column
	cellH      float64 // Playfield units per row
	fieldW     float64
	fieldH     float64
	offsetX    int // Columns of margin on the left
	offsetY    int
	cols, rows int // Cells covered by the playfield
}

// NewScreenCanvas maps a fieldW x fieldH playfield onto the whole screen.
func NewScreenCanvas(screen *core.Screen, fieldW, fieldH float64) *ScreenCanvas {
	return NewScreenCanvasAt(screen, fieldW, fieldH, 0, 0, screen.Width(), screen.Height())
}

// NewScreenCanvasAt maps the playfield onto a cols x rows area starting at (x, y).
func NewScreenCanvasAt(screen *core.Screen, fieldW, fieldH float64, x, y, cols, rows int) *ScreenCanvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &ScreenCanvas{
		screen:  screen,
		cellW:   fieldW / float64(cols),
		cellH:   fieldH / float64(rows),
		fieldW:  fieldW,
		fieldH:  fieldH,
		offsetX: x,
		offsetY: y,
		cols:    cols,
		rows:    rows,
	}
}

// FillRect paints the cells covered by r. Black fills clear cells.
// Detail fills only change the glyph of cells a body already painted.
func (c *ScreenCanvas) FillRect(r core.Rect, f Fill) {
	x0, x1 := span(r.X, r.W, c.cellW, c.cols)
	y0, y1 := span(r.Y, r.H, c.cellH, c.rows)
	x0, y0 = x0+c.offsetX, y0+c.offsetY
	x1, y1 = x1+c.offsetX, y1+c.offsetY

	switch {
	case f.Detail:
		for sy := y0; sy < y1; sy++ {
			for sx := x0; sx < x1; sx++ {
				cell := c.screen.GetCell(sx, sy)
				if cell.Rune == GlyphBody {
					c.screen.SetCell(sx, sy, GlyphDetail, cell.Color)
				}
			}
		}
	case f.Color == core.ColorBlack:
		c.screen.FillRect(x0, y0, x1-x0, y1-y0, ' ', core.ColorDefault)
	default:
		c.screen.FillRect(x0, y0, x1-x0, y1-y0, GlyphBody, f.Color)
	}
}

// span returns the half-open cell range [lo, hi) covered by the interval
// [pos, pos+size), clipped to [0, limit).
func span(pos, size, cell float64, limit int) (int, int) {
	lo := int(math.Ceil(pos/cell - 0.5))
	hi := int(math.Ceil((pos+size)/cell - 0.5))
	if hi <= lo {
		lo = int(math.Floor((pos + size/2) / cell))
		hi = lo + 1
	}
	return max(lo, 0), min(hi, limit)
}

// DrawText writes text on the row holding the baseline y.
func (c *ScreenCanvas) DrawText(x, y float64, text string, style TextStyle) {
	col := int(math.Floor(x / c.cellW))
	if style.Align == AlignCenter {
		col = int(math.Round(x/c.cellW)) - utf8.RuneCountInString(text)/2
	}
	row := int(math.Floor(y / c.cellH))
	row = core.Clamp(row, 0, c.rows-1)

	color := style.Color
	if color == core.ColorBlack {
		color = core.ColorDefault
	}
	c.screen.DrawText(col+c.offsetX, row+c.offsetY, text, color)
}

// CellSize returns the playfield units covered by one column and one row.
func (c *ScreenCanvas) CellSize() (float64, float64) {
	return c.cellW, c.cellH
}
