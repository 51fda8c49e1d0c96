package output

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

var errNoCalculation = errors.New("report has no calculation")

// Console palette
var (
	colorAccent  = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#FFA500")
	colorMuted   = lipgloss.Color("#626262")
)

const (
	labelWidth = 28
	cellWidth  = 14
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth).
			Align(lipgloss.Right)

	labelStyle = lipgloss.NewStyle().Width(labelWidth)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Right)

	netCellStyle = cellStyle.
			Bold(true).
			Foreground(colorSuccess)

	deductionCellStyle = cellStyle.Foreground(colorWarning)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)
)
