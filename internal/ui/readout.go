package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

// RenderReadout draws the digital line under the dial: the converted
// field value, the click-rate figure, calibration state, and a flash
// marker on the frame a click fires.
func RenderReadout(width int, magnitude, normalized float64, u meter.Unit, calibrated, flash, muted bool) string {
	display := meter.DisplayValue(meter.Convert(magnitude, meter.UnitMicroTesla, u), u)

	valueSty := StyleReadout
	if normalized >= config.GaugeHotZone {
		valueSty = StyleReadoutHot
	}
	value := valueSty.Render(display)

	rate := meter.ClickRate(normalized)
	rateText := fmt.Sprintf("%.0f cps", rate)
	if muted {
		rateText += " (muted)"
	}
	rateSty := StyleReadoutUnit
	if flash && !muted {
		rateSty = StyleClickFlash
	}
	clicks := rateSty.Render(rateText)

	cal := StyleUncalibrated.Render("CAL --")
	if calibrated {
		cal = StyleCalibrated.Render("CAL OK")
	}

	tick := "  "
	if flash && !muted {
		tick = StyleClickFlash.Render("* ")
	}

	line := tick + value + "   " + clicks + "   " + cal

	gap := width - lipgloss.Width(line)
	if gap < 0 {
		gap = 0
	}
	pad := ""
	for i := 0; i < gap/2; i++ {
		pad += " "
	}
	return pad + line
}
