package out

import (
	"strings"
	"sync"
)

// GridSurface is a drawing surface backed by a grid of terminal cells. Canvas
// coordinates are scaled onto the grid; markers landing in the same cell stack.
type GridSurface struct {
	mu      sync.RWMutex
	width   float64
	height  float64
	cols    int
	rows    int
	cells   []int
	markers int
}

func NewGridSurface(width, height float64, cols, rows int) *GridSurface {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &GridSurface{
		width:  width,
		height: height,
		cols:   cols,
		rows:   rows,
		cells:  make([]int, cols*rows),
	}
}

func (g *GridSurface) Size() (float64, float64) {
	return g.width, g.height
}

func (g *GridSurface) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cells {
		g.cells[i] = 0
	}
	g.markers = 0
}

// DrawMarker fills the cell under (x, y). The radius is in canvas units and
// widens the marker to neighbouring cells only when it spans more than one.
func (g *GridSurface) DrawMarker(x, y, radius float64) {
	if g.cols == 0 || g.rows == 0 || g.width <= 0 || g.height <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markers++
	cellW := g.width / float64(g.cols)
	cellH := g.height / float64(g.rows)
	spanX := int(radius / cellW)
	spanY := int(radius / cellH)
	col, row := g.cell(x, y)
	for dy := -spanY; dy <= spanY; dy++ {
		for dx := -spanX; dx <= spanX; dx++ {
			c, r := col+dx, row+dy
			if c < 0 || c >= g.cols || r < 0 || r >= g.rows {
				continue
			}
			g.cells[r*g.cols+c]++
		}
	}
}

func (g *GridSurface) cell(x, y float64) (int, int) {
	col := int(x / g.width * float64(g.cols))
	row := int(y / g.height * float64(g.rows))
	if col >= g.cols {
		col = g.cols - 1
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return col, row
}

// Markers reports how many markers were drawn since the last Clear.
func (g *GridSurface) Markers() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.markers
}

// Lines renders the grid: blank cells are spaces, single hits are light dots
// and stacked hits are solid.
func (g *GridSurface) Lines() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	lines := make([]string, g.rows)
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		sb.Reset()
		for c := 0; c < g.cols; c++ {
			switch n := g.cells[r*g.cols+c]; {
			case n == 0:
				sb.WriteByte(' ')
			case n == 1:
				sb.WriteRune('•')
			default:
				sb.WriteRune('●')
			}
		}
		lines[r] = sb.String()
	}
	return lines
}

func (g *GridSurface) String() string {
	return strings.Join(g.Lines(), "\n")
}
