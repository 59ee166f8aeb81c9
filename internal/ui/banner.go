package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `██   ██   █████   ██        ██████
██  ██   ██   ██  ██        ██   ██
█████    ███████  ██        ██████
██  ██   ██   ██  ██        ██
██   ██  ██   ██  ███████   ██`

const bannerSubtitle = "Kalpyotish • Admin Console"

// RenderBanner returns the KALP wordmark over a centered subtitle rule.
func RenderBanner() string {
	art := lipgloss.NewStyle().Foreground(ColorPrimary).Render(bannerArt)
	width := max(lipgloss.Width(bannerArt), lipgloss.Width(bannerSubtitle))

	under := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	subtitle := under.Foreground(ColorMuted).Render(bannerSubtitle)
	rule := under.Foreground(ColorBorder).Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle)))

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, art, "", subtitle, rule) + "\n"
}
