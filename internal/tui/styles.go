package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorLock    = lipgloss.Color("99")  // purple
	colorLocked  = lipgloss.Color("203") // red
	colorOpen    = lipgloss.Color("42")  // green
	colorSlot    = lipgloss.Color("33")  // blue
	colorMuted   = lipgloss.Color("241")
	colorError   = lipgloss.Color("196")
	colorBanner  = lipgloss.Color("226") // yellow
	confettiHues = []lipgloss.Color{"196", "46", "21", "226", "201", "51"}

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(1, 3).
			Width(40).
			Align(lipgloss.Center)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	descStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	bannerStyle  = lipgloss.NewStyle().Foreground(colorBanner).Bold(true).Blink(true)
	filledSlot   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(colorSlot).Bold(true).Padding(0, 1)
	emptySlot    = lipgloss.NewStyle().Foreground(colorMuted).Background(lipgloss.Color("236")).Padding(0, 1)
	keypadKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(colorSlot).Bold(true).Padding(0, 2)
	keypadAction = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true).Padding(0, 2)
)
