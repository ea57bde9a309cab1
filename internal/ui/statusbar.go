package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

// RenderStatusBar renders the bottom status bar. peak is the strongest
// normalized magnitude in the history window.
func RenderStatusBar(width int, paused bool, u meter.Unit, samples int, peak float64, recording bool, rows, wsClients int, mqttOn bool) string {
	status := ""
	if paused {
		status = StyleStatusPaused.Render("[PAUSED]")
	} else {
		status = StyleStatusLive.Render("[LIVE]")
	}

	info := fmt.Sprintf(" Unit: %s  Range: 0-%s  Samples: %d",
		u.Symbol(), meter.FormatValue(meter.MaxDisplayValue(u), u), samples)
	if samples > 0 {
		peakMicroTesla := peak * config.FullScaleMicroTesla
		info += fmt.Sprintf("  Peak: %s",
			meter.DisplayValue(meter.Convert(peakMicroTesla, meter.UnitMicroTesla, u), u))
	}
	if wsClients > 0 {
		info += fmt.Sprintf("  WS: %d", wsClients)
	}
	if mqttOn {
		info += "  MQTT: on"
	}

	content := status + StyleStatusBar.Foreground(ColorAmber).Render(info)
	if recording {
		content += "  " + StyleStatusRecord.Render(fmt.Sprintf("[REC %d]", rows))
	}

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}
