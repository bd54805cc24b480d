package report

import "github.com/charmbracelet/lipgloss"

const (
	ansiRedColorConstant     = "1"
	ansiGreenColorConstant   = "2"
	ansiYellowColorConstant  = "3"
	ansiBlueColorConstant    = "4"
	ansiMagentaColorConstant = "5"
	ansiCyanColorConstant    = "6"
	ansiWhiteColorConstant   = "7"
)

// consolePalette holds the styles used by the console renderer. Styles are
// bound to a lipgloss renderer so color output follows the capabilities of
// the destination writer.
type consolePalette struct {
	frame    lipgloss.Style
	label    lipgloss.Style
	path     lipgloss.Style
	banner   lipgloss.Style
	announce lipgloss.Style
	allClear lipgloss.Style
	red      lipgloss.Style
	green    lipgloss.Style
	yellow   lipgloss.Style
	blue     lipgloss.Style
	magenta  lipgloss.Style
	white    lipgloss.Style
}

func newConsolePalette(styleRenderer *lipgloss.Renderer) consolePalette {
	return consolePalette{
		frame:    styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiCyanColorConstant)),
		label:    styleRenderer.NewStyle().Bold(true),
		path:     styleRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiWhiteColorConstant)),
		banner:   styleRenderer.NewStyle().Bold(true).Background(lipgloss.Color(ansiBlueColorConstant)),
		announce: styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiYellowColorConstant)),
		allClear: styleRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiGreenColorConstant)),
		red:      styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiRedColorConstant)),
		green:    styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiGreenColorConstant)),
		yellow:   styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiYellowColorConstant)),
		blue:     styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiBlueColorConstant)),
		magenta:  styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiMagentaColorConstant)),
		white:    styleRenderer.NewStyle().Foreground(lipgloss.Color(ansiWhiteColorConstant)),
	}
}
