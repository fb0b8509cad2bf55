package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockpath/internal/core"
	"github.com/vovakirdan/blockpath/internal/layout"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs used for the path.
const (
	blockGlyph = "▆▆▆"
	homeGlyph  = "[⌂]"
	guideRune  = '┊'
)

// SceneFrame describes what DrawScene should show.
type SceneFrame struct {
	Snapshot layout.Snapshot
	Options  layout.Options
	MaxSteps int  // steps the vertical extent is sized for
	Shadow   bool // shadow visualization enabled
}

// Projection returns the projection DrawScene uses for area.
func (f SceneFrame) Projection(area core.Rect) core.Projection {
	stride := f.Options.Unit - f.Options.Compensation
	return core.FitProjection(area, f.Options.Unit, float64(max(f.MaxSteps, 1))*stride)
}

// DrawScene draws the block path into area of s: a center guide, one glyph
// per visible block and the home marker. The guide color follows the
// shadow state.
func DrawScene(s *core.Screen, area core.Rect, f SceneFrame) {
	if area.W < len([]rune(blockGlyph))+2 || area.H < 2 {
		return
	}
	proj := f.Projection(area)

	guideColor := core.ColorOverlay
	if f.Shadow {
		guideColor = core.ColorShadow
	}
	cx, _ := area.Center()
	s.DrawVLine(cx, area.Y, area.H, guideRune, guideColor)

	for _, p := range f.Snapshot.Blocks {
		drawGlyph(s, area, proj, p, blockGlyph, core.ColorBlock)
	}
	if f.Snapshot.Home != nil {
		drawGlyph(s, area, proj, *f.Snapshot.Home, homeGlyph, core.ColorHome)
	}
}

func drawGlyph(s *core.Screen, area core.Rect, proj core.Projection, p layout.Placement, glyph string, c core.Color) {
	col, row := proj.Project(p.X, p.Y)
	if !area.Contains(col, row) {
		return
	}
	w := len([]rune(glyph))
	x := core.Clamp(col-w/2, area.X, area.Right()-w)
	s.DrawTextColored(x, row, glyph, c)
}
