package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
)

// RenderGauge draws the analog dial: a semicircular arc with scale ticks,
// the needle pivoting at the bottom center, and end labels in the active
// unit. position is the needle deflection in [0, 1].
func RenderGauge(width, height int, position float64, u meter.Unit) string {
	if width < 15 || height < 6 {
		return ""
	}

	grid := make([][]byte, height)
	isNeedle := make([][]bool, height)
	isHot := make([][]bool, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		isNeedle[i] = make([]bool, width)
		isHot[i] = make([]bool, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Pivot sits near the bottom so the full semicircle fits above it.
	fcx := float64(width) / 2.0
	fcy := float64(height) - 2.0
	rx := fcx - 2.0
	ry := fcy - 1.0
	if rx < 4 {
		rx = 4
	}
	if ry < 2 {
		ry = 2
	}

	// Dial arc: deflection 0 is the left end, 1 the right end.
	steps := 100
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		a := deflectionAngle(frac)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height && grid[row][col] == ' ' {
			grid[row][col] = arcChar(a)
			isHot[row][col] = frac >= config.GaugeHotZone
		}
	}

	// Scale ticks on the arc.
	for i := 0; i <= config.ScaleDivisions; i++ {
		frac := float64(i) / float64(config.ScaleDivisions)
		a := deflectionAngle(frac)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = '+'
			isHot[row][col] = frac >= config.GaugeHotZone
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// End and midpoint labels.
	labels := meter.ScaleLabels(u, config.ScaleDivisions)
	if len(labels) == config.ScaleDivisions+1 {
		lo := labels[0]
		mid := labels[config.ScaleDivisions/2]
		hi := labels[config.ScaleDivisions]

		putString(grid, width, height, cx-int(math.Round(rx))-1, cy+1, lo)
		putString(grid, width, height, cx-len(mid)/2, cy-int(math.Round(ry))-1, mid)
		putString(grid, width, height, cx+int(math.Round(rx))-len(hi)+2, cy+1, hi)
	}

	// Needle shaft from the pivot toward the dial.
	hot := position >= config.GaugeHotZone
	na := deflectionAngle(clampFrac(position))
	sinA := math.Sin(na)
	cosA := math.Cos(na)
	shaftSteps := int(math.Max(rx, ry))
	if shaftSteps < 3 {
		shaftSteps = 3
	}
	var tipCol, tipRow int
	for s := 1; s <= shaftSteps; s++ {
		t := float64(s) / float64(shaftSteps) * 0.85
		col := int(math.Round(fcx + t*rx*sinA))
		row := int(math.Round(fcy - t*ry*cosA))
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = shaftChar(na)
			isNeedle[row][col] = true
			tipCol, tipRow = col, row
		}
	}
	if tipCol >= 0 && tipCol < width && tipRow >= 0 && tipRow < height {
		grid[tipRow][tipCol] = needleTip(na)
		isNeedle[tipRow][tipCol] = true
	}

	// Pivot
	setGrid(grid, width, height, cx, cy, 'O')
	isNeedle[cy][cx] = true

	needleSty := lipgloss.NewStyle().Foreground(ColorAmberBright).Bold(true)
	if hot {
		needleSty = lipgloss.NewStyle().Foreground(ColorHotRed).Bold(true)
	}
	arcSty := lipgloss.NewStyle().Foreground(ColorAmberMid)
	hotSty := lipgloss.NewStyle().Foreground(ColorHotRed)
	labelSty := lipgloss.NewStyle().Foreground(ColorAmber)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := grid[row][col]
			switch {
			case ch == ' ':
				sb.WriteByte(' ')
			case isNeedle[row][col]:
				sb.WriteString(needleSty.Render(string(ch)))
			case isHot[row][col]:
				sb.WriteString(hotSty.Render(string(ch)))
			case ch >= '0' && ch <= '9' || ch == '.':
				sb.WriteString(labelSty.Render(string(ch)))
			default:
				sb.WriteString(arcSty.Render(string(ch)))
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// deflectionAngle maps a [0,1] deflection onto the dial sweep, with 0
// pointing at the left end and 1 at the right. Angles use the compass
// convention: 0 is straight up, clockwise positive.
func deflectionAngle(frac float64) float64 {
	return (frac - 0.5) * math.Pi
}

func clampFrac(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func setGrid(grid [][]byte, w, h, col, row int, ch byte) {
	if col >= 0 && col < w && row >= 0 && row < h {
		grid[row][col] = ch
	}
}

func putString(grid [][]byte, w, h, col, row int, s string) {
	for i := 0; i < len(s); i++ {
		setGrid(grid, w, h, col+i, row, s[i])
	}
}

func arcChar(a float64) byte {
	sector := angleSector(a)
	switch sector {
	case 0, 4:
		return '-'
	case 2, 6:
		return '|'
	case 1, 5:
		return '\\'
	default:
		return '/'
	}
}

// shaftChar returns the line character for a given needle direction.
func shaftChar(a float64) byte {
	switch angleSector(a) {
	case 0, 4:
		return '|'
	case 2, 6:
		return '-'
	case 1, 5:
		return '\\'
	default:
		return '/'
	}
}

// needleTip returns the tip character for a given needle direction.
func needleTip(a float64) byte {
	switch angleSector(a) {
	case 0:
		return '^'
	case 1:
		return '/'
	case 2:
		return '>'
	case 3:
		return '\\'
	case 4:
		return 'v'
	case 5:
		return '/'
	case 6:
		return '<'
	default:
		return '\\'
	}
}

func angleSector(a float64) int {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}
