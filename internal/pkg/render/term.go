package render

import (
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/lucasb-eyer/go-colorful"
)

// CellSurface rasterizes drawing primitives into a terminal cell grid.
// One cell is one character, colors are mapped to the 256-color cube
// when rendered.
type CellSurface struct {
	width, height int
	runes         []rune
	colors        []colorful.Color
	set           []bool
}

func NewCellSurface(width, height int) *CellSurface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &CellSurface{
		width:  width,
		height: height,
		runes:  make([]rune, width*height),
		colors: make([]colorful.Color, width*height),
		set:    make([]bool, width*height),
	}
}

func (s *CellSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *CellSurface) Cell(x, y int) (rune, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	i := y*s.width + x
	if !s.set[i] {
		return 0, false
	}
	return s.runes[i], true
}

func (s *CellSurface) put(x, y int, r rune, c colorful.Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := y*s.width + x
	s.runes[i] = r
	s.colors[i] = c
	s.set[i] = true
}

// Line draws with Bresenham, picking a rune from the segment direction.
func (s *CellSurface) Line(x1, y1, x2, y2 float64, style Style) {
	ix1, iy1 := int(x1+0.5), int(y1+0.5)
	ix2, iy2 := int(x2+0.5), int(y2+0.5)

	dx := abs(ix2 - ix1)
	dy := -abs(iy2 - iy1)
	sx, sy := 1, 1
	if ix1 > ix2 {
		sx = -1
	}
	if iy1 > iy2 {
		sy = -1
	}

	r := lineRune(ix2-ix1, iy2-iy1)

	err := dx + dy
	x, y := ix1, iy1
	for {
		s.put(x, y, r, style.Color)
		if x == ix2 && y == iy2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Circle marks the center and, for radii above one cell, a coarse ring.
func (s *CellSurface) Circle(cx, cy, r float64, style Style) {
	x, y := int(cx+0.5), int(cy+0.5)
	marker := '●'
	if style.Width >= 3 {
		marker = '◉'
	}
	s.put(x, y, marker, style.Color)
	if r >= 2 {
		s.put(x-1, y, '(', style.Color)
		s.put(x+1, y, ')', style.Color)
	}
}

func (s *CellSurface) Text(x, y float64, anchor Anchor, text string, style Style) {
	ix, iy := int(x+0.5), int(y+0.5)
	switch anchor {
	case AnchorCenter:
		ix -= len(text) / 2
	case AnchorRight:
		ix -= len(text)
	}
	for i, r := range text {
		s.put(ix+i, iy, r, style.Color)
	}
}

// String renders the grid with aurora 256-color escapes. With colors
// disabled the plain rune grid is returned.
func (s *CellSurface) String(au aurora.Aurora) string {
	var b strings.Builder
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			i := y*s.width + x
			if !s.set[i] {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(au.Index(colorIndex(s.colors[i]), string(s.runes[i])).String())
		}
		b.WriteRune('\n')
	}
	return b.String()
}

// colorIndex maps a color into the 216-entry 6x6x6 terminal color cube.
func colorIndex(c colorful.Color) uint8 {
	r := uint8(clamp01(c.R) * 5)
	g := uint8(clamp01(c.G) * 5)
	b := uint8(clamp01(c.B) * 5)
	return 16 + 36*r + 6*g + b
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
