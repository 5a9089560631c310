package inspector

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow  = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn  = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Row geometry
const (
	valueOffset = 80
	barWidth    = 120
	barHeight   = 14
	lineHeight  = 16
)

// DrawRow renders one row and returns the height it used.
func DrawRow(x, y int32, r Row) int32 {
	switch r.Widget {
	case WidgetBar:
		return drawBar(x, y, r)
	case WidgetBool:
		return drawBool(x, y, r)
	case WidgetIDs:
		return drawIDs(x, y, r)
	default:
		rl.DrawText(fmt.Sprintf("%s: %s", r.Name, r.Text), x, y, 16, ColorText)
		return 20
	}
}

// drawBar fills red below 30%.
func drawBar(x, y int32, r Row) int32 {
	rl.DrawText(r.Name, x, y, 14, ColorTextDim)

	bx := x + valueOffset
	rl.DrawRectangle(bx, y, barWidth, barHeight, ColorBarBg)
	fill := ColorBarFill
	if r.Fill < 0.3 {
		fill = ColorBarLow
	}
	rl.DrawRectangle(bx, y, int32(barWidth*r.Fill), barHeight, fill)
	rl.DrawText(r.Text, bx+barWidth+5, y, 14, ColorTextDim)
	return 18
}

func drawBool(x, y int32, r Row) int32 {
	rl.DrawText(r.Name, x, y, 14, ColorTextDim)

	color := ColorBoolOff
	if r.On {
		color = ColorBoolOn
	}
	ix := x + valueOffset
	rl.DrawRectangle(ix, y, barHeight, barHeight, color)
	rl.DrawText(r.Text, ix+barHeight+5, y, 14, color)
	return 18
}

func drawIDs(x, y int32, r Row) int32 {
	rl.DrawText(r.Name, x, y, 14, ColorTextDim)
	if len(r.Lines) == 0 {
		rl.DrawText("none", x+valueOffset, y, 14, ColorTextDim)
		return 18
	}
	var h int32
	for _, line := range r.Lines {
		rl.DrawText(line, x+valueOffset, y+h, 14, ColorText)
		h += lineHeight
	}
	return h + 2
}

// FormatIDs groups identifiers into lines of at most perLine entries.
func FormatIDs(ids []uint64, perLine int) []string {
	if perLine < 1 {
		perLine = 1
	}
	var lines []string
	for start := 0; start < len(ids); start += perLine {
		end := start + perLine
		if end > len(ids) {
			end = len(ids)
		}
		parts := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			parts = append(parts, fmt.Sprintf("%d", id))
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return lines
}
