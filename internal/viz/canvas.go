package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Each terminal cell holds a 2x4 braille dot matrix starting at U+2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot canvas. Dot coordinates run from (0,0) to
// (2*Width-1, 4*Height-1); every cell remembers the color of the last dot
// drawn into it.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h), colors: make([][]string, h)}
	for row := range c.cells {
		c.cells[row] = make([]rune, w)
		c.colors[row] = make([]string, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Clear() {
	for row := range c.cells {
		for col := range c.cells[row] {
			c.cells[row][col] = brailleBase
			c.colors[row][col] = ""
		}
	}
}

// Set lights dot (x, y) in color, a lipgloss color string. Dots outside the
// canvas are ignored.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
	if color != "" {
		c.colors[row][col] = color
	}
}

// Lit reports whether dot (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

// Line draws a Bresenham line.
func (c *Canvas) Line(x0, y0, x1, y1 int, color string) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Disc fills a circle of radius r dots around (cx, cy). A radius below one
// dot still lights the center.
func (c *Canvas) Disc(cx, cy int, r float64, color string) {
	ri := int(r)
	if ri < 1 {
		c.Set(cx, cy, color)
		return
	}
	r2 := r * r
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Set(cx+dx, cy+dy, color)
			}
		}
	}
}

// String returns the canvas without colors.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render returns the canvas with every run of equally colored cells wrapped
// in a lipgloss foreground style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.cells {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.colors[row][col] == c.colors[row][start] {
				continue
			}
			run := string(c.cells[row][start:col])
			if color := c.colors[row][start]; color != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(run)
			}
			b.WriteString(run)
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
