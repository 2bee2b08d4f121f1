package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/escaperoom/internal/game"
	"github.com/jask/escaperoom/internal/pin"
)

func (a *App) View() string {
	var card string
	switch a.machine.Mode() {
	case game.ModeCreating:
		card = a.renderLock()
	case game.ModeEntering:
		card = a.renderEscape()
	default:
		card = a.renderUnlocked()
	}
	if !a.party.active {
		return card
	}
	banner := lipgloss.PlaceHorizontal(a.width, lipgloss.Center, bannerStyle.Render("YOU ESCAPED!"))
	return lipgloss.JoinVertical(lipgloss.Left, a.party.render(a.width), banner, card)
}

func (a *App) renderLock() string {
	body := []string{
		titleStyle.Foreground(colorLock).Render("Secret Lock"),
		descStyle.Render("Create a 3-digit PIN to lock the room"),
		"",
		renderSlots(a.machine.Entry()),
		a.renderStatus(),
		a.renderHelp("lock the room"),
	}
	return cardStyle.BorderForeground(colorBanner).Render(strings.Join(body, "\n"))
}

func (a *App) renderEscape() string {
	body := []string{
		titleStyle.Foreground(colorLocked).Render("Locked Room"),
		descStyle.Render("Enter the correct PIN to escape"),
		"",
		renderSlots(a.machine.Entry()),
		"",
		renderKeypad(),
		a.renderStatus(),
		a.renderHelp("try to escape"),
	}
	style := cardStyle.BorderForeground(colorLocked)
	if a.shaking {
		style = style.MarginLeft(2)
	}
	return style.Render(strings.Join(body, "\n"))
}

func (a *App) renderUnlocked() string {
	p, _ := a.machine.Unlocked()
	body := []string{
		titleStyle.Foreground(colorOpen).Render("Unlocked!"),
		descStyle.Render("You've escaped!"),
		"",
		renderSlots(p.String()),
		"",
		a.help.ShortHelpView([]key.Binding{a.keys.PlayAgain, a.keys.Quit}),
	}
	return cardStyle.BorderForeground(colorOpen).Render(strings.Join(body, "\n"))
}

func (a *App) renderStatus() string {
	switch {
	case a.status != "":
		return errorStyle.Render(a.status)
	case a.shaking:
		return errorStyle.Render("✗ Wrong PIN")
	default:
		return ""
	}
}

func (a *App) renderHelp(submitLabel string) string {
	submit := a.keys.Submit
	submit.SetHelp("enter", submitLabel)
	submit.SetEnabled(a.machine.CanSubmit())
	return a.help.ShortHelpView([]key.Binding{a.keys.Digits, a.keys.Delete, a.keys.Clear, submit, a.keys.Quit})
}

func renderSlots(entry string) string {
	slots := make([]string, 0, pin.Length)
	for i := 0; i < pin.Length; i++ {
		if i < len(entry) {
			slots = append(slots, filledSlot.Render(entry[i:i+1]))
		} else {
			slots = append(slots, emptySlot.Render(" "))
		}
	}
	return strings.Join(slots, " ")
}

func renderKeypad() string {
	rows := [][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}}
	lines := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, d := range row {
			cells = append(cells, keypadKey.Render(d))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	lines = append(lines, strings.Join([]string{
		keypadAction.Render("C"),
		keypadKey.Render("0"),
		keypadAction.Render("←"),
	}, " "))
	return strings.Join(lines, "\n")
}
