package inspector

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel layout
const (
	PanelPadding = 10
	HeaderHeight = 30
	rowHeight    = 16
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorSelectedRow = rl.Color{R: 70, G: 90, B: 140, A: 255}
)

// Panel draws a Frame and tracks which agent is selected.
// It never writes to the simulation.
type Panel struct {
	x, y          int32
	width, height int32

	selected    uint64
	hasSelected bool
}

// NewPanel creates a panel occupying the given screen rectangle.
func NewPanel(x, y, width, height int32) *Panel {
	return &Panel{x: x, y: y, width: width, height: height}
}

// Select marks the agent with the given identifier.
func (p *Panel) Select(id uint64) {
	p.selected = id
	p.hasSelected = true
}

// Deselect clears the selection.
func (p *Panel) Deselect() {
	p.hasSelected = false
}

// Selected returns the selected identifier.
func (p *Panel) Selected() (uint64, bool) {
	return p.selected, p.hasSelected
}

// Contains reports whether a screen point lies on the panel.
func (p *Panel) Contains(mx, my float32) bool {
	return mx >= float32(p.x) && mx < float32(p.x+p.width) &&
		my >= float32(p.y) && my < float32(p.y+p.height)
}

// Draw renders the panel for the given frame.
func (p *Panel) Draw(frame *Frame) {
	rl.DrawRectangle(p.x, p.y, p.width, p.height, ColorPanelBg)
	rl.DrawRectangleLines(p.x, p.y, p.width, p.height, ColorPanelBorder)

	// Header
	rl.DrawRectangle(p.x, p.y, p.width, HeaderHeight, ColorPanelHeader)
	title := "Inspector"
	if frame != nil {
		title = fmt.Sprintf("Tick %d  |  %d/%d rabbits", frame.Tick, frame.Population, frame.Cap)
	}
	rl.DrawText(title, p.x+PanelPadding, p.y+8, 16, ColorHeaderText)

	if frame == nil {
		return
	}

	x := p.x + PanelPadding
	y := p.y + HeaderHeight + PanelPadding
	rl.DrawText(fmt.Sprintf("Foliage: %d/%d available", frame.AvailablePatches, frame.TotalPatches), x, y, 14, ColorTextDim)
	y += 22

	// Selection controls
	btnW := float32(p.width-3*PanelPadding) / 2
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: btnW, Height: 24}, "< Prev") {
		p.selected, p.hasSelected = nextSelection(frame.Agents, p.selected, p.hasSelected, -1)
	}
	if gui.Button(rl.Rectangle{X: float32(x) + btnW + PanelPadding, Y: float32(y), Width: btnW, Height: 24}, "Next >") {
		p.selected, p.hasSelected = nextSelection(frame.Agents, p.selected, p.hasSelected, 1)
	}
	y += 34

	y = p.drawSelected(frame, x, y)
	p.drawRoster(frame, x, y)
}

// drawSelected renders the selected agent's fields and partner candidates.
func (p *Panel) drawSelected(frame *Frame, x, y int32) int32 {
	y = p.section("Selected", x, y)

	agent, ok := frame.Find(p.selected)
	if !p.hasSelected || !ok {
		rl.DrawText("click a rabbit or use Prev/Next", x, y, 14, ColorTextDim)
		return y + 24
	}

	for _, row := range Rows(agent) {
		y += DrawRow(x, y, row)
	}
	return y + 8
}

// drawRoster lists every agent that fits, highlighting the selection.
func (p *Panel) drawRoster(frame *Frame, x, y int32) {
	y = p.section("Population", x, y)

	bottom := p.y + p.height - PanelPadding
	for i := range frame.Agents {
		if y+rowHeight > bottom {
			rl.DrawText(fmt.Sprintf("... %d more", len(frame.Agents)-i), x, y, 14, ColorTextDim)
			return
		}
		a := &frame.Agents[i]
		if p.hasSelected && a.ID == p.selected {
			rl.DrawRectangle(x-2, y-1, p.width-2*PanelPadding+4, rowHeight, ColorSelectedRow)
		}
		line := fmt.Sprintf("%-20d (%2d,%2d)  h%-4d t%-4d %s", a.ID, a.X, a.Z, a.Hunger, a.Thirst, a.Action)
		rl.DrawText(line, x, y, 12, ColorText)
		y += rowHeight
	}
}

func (p *Panel) section(name string, x, y int32) int32 {
	rl.DrawRectangle(x-4, y, p.width-2*PanelPadding+8, 20, ColorSection)
	rl.DrawText(name, x, y+3, 14, ColorSectionText)
	return y + 26
}
