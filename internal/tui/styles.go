package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/skillgap/internal/roles"
)

var (
	colorAccent  = lipgloss.Color("#5B8DEF")
	colorBrand   = lipgloss.Color("#FF6B6B")
	colorBorder  = lipgloss.Color("#444444")
	colorMuted   = lipgloss.Color("#888888")
	colorDim     = lipgloss.Color("#AAAAAA")
	colorStrong  = lipgloss.Color("#4CAF50")
	colorDevelop = lipgloss.Color("#F7B801")
	colorMissing = lipgloss.Color("#FF6B6B")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	chipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Background(lipgloss.Color("#2A2F3A")).Padding(0, 1)
	badgeStyle   = lipgloss.NewStyle().Foreground(colorStrong).Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(colorAccent)
	dropActiveStyle   = panelStyle.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(colorAccent)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorAccent).
			Padding(0, 2)
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(lipgloss.Color("#2A2F3A")).
				Padding(0, 2)
)

func toneStyle(tone roles.Tone) lipgloss.Style {
	switch tone {
	case roles.ToneStrong:
		return lipgloss.NewStyle().Foreground(colorStrong)
	case roles.ToneDeveloping:
		return lipgloss.NewStyle().Foreground(colorDevelop)
	case roles.ToneMissing:
		return lipgloss.NewStyle().Foreground(colorMissing)
	default:
		return lipgloss.NewStyle().Foreground(colorDim)
	}
}

func toneTitle(tone roles.Tone) string {
	switch tone {
	case roles.ToneStrong:
		return "Strong signals"
	case roles.ToneDeveloping:
		return "Developing"
	case roles.ToneMissing:
		return "Missing for this role"
	default:
		return string(tone)
	}
}
