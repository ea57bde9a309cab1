package ui

import "github.com/charmbracelet/lipgloss"

// Amber instrument palette
var (
	ColorAmberBright = lipgloss.Color("#FFB000")
	ColorAmber       = lipgloss.Color("#CC8800")
	ColorAmberMid    = lipgloss.Color("#8F5E00")
	ColorAmberDim    = lipgloss.Color("#4A3100")
	ColorBlack       = lipgloss.Color("#000000")
	ColorHotRed      = lipgloss.Color("#FF3300")
	ColorWarning     = lipgloss.Color("#FFAA00")
	ColorReadout     = lipgloss.Color("#FFD24D")
	ColorBorderNorm  = lipgloss.Color("#AA7700")
	ColorBorderHot   = lipgloss.Color("#FF3300")
	ColorRecord      = lipgloss.Color("#FF5555")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#221800")).
			Foreground(ColorAmberBright).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorAmber)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#221800")).
			Foreground(ColorAmber).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleStatusRecord = lipgloss.NewStyle().
				Foreground(ColorRecord).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelHot = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderHot)

	StyleReadout = lipgloss.NewStyle().
			Foreground(ColorReadout).
			Bold(true)

	StyleReadoutHot = lipgloss.NewStyle().
			Foreground(ColorHotRed).
			Bold(true)

	StyleReadoutUnit = lipgloss.NewStyle().
				Foreground(ColorAmber)

	StyleCalibrated = lipgloss.NewStyle().
			Foreground(ColorAmber)

	StyleUncalibrated = lipgloss.NewStyle().
				Foreground(ColorAmberDim)

	StyleClickFlash = lipgloss.NewStyle().
			Foreground(ColorAmberBright).
			Bold(true)
)
