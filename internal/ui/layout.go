package ui

import "github.com/charmbracelet/lipgloss"

// RenderGaugePanel wraps the dial, readout and sparkline with a styled
// border. The border turns hot when the needle enters the warning zone.
func RenderGaugePanel(width, height int, hot bool, gauge, readout, spark string) string {
	content := gauge + "\n" + readout + "\n" + spark
	sty := StylePanelBorder
	if hot {
		sty = StylePanelHot
	}
	return sty.Width(width - 2).Height(height - 2).Render(content)
}

// ComposeLayout stacks the panels with menu bar on top and status bar on
// bottom.
func ComposeLayout(menuBar, body, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}
