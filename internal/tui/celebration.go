package tui

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	confettiInterval = 250 * time.Millisecond
	confettiRows     = 6
	maxConfetti      = 50
)

var confettiGlyphs = []rune{'*', '+', 'o', '•', '✦', '~'}

type particle struct {
	x, y  int
	glyph rune
	hue   lipgloss.Color
}

// party is the celebration overlay. Its density decays linearly over the
// configured duration.
type party struct {
	active    bool
	seq       int
	total     time.Duration
	remaining time.Duration
	confetti  []particle
}

func (p *party) start(d time.Duration, rng *rand.Rand, width int) {
	p.seq++
	p.active = true
	p.total = d
	p.remaining = d
	p.scatter(rng, width)
}

// advance consumes one tick and reports whether the party continues.
func (p *party) advance(rng *rand.Rand, width int) bool {
	p.remaining -= confettiInterval
	if p.remaining <= 0 {
		p.stop()
		return false
	}
	p.scatter(rng, width)
	return true
}

func (p *party) stop() {
	p.seq++
	p.active = false
	p.confetti = nil
	p.remaining = 0
}

func (p *party) scatter(rng *rand.Rand, width int) {
	if width < 1 {
		width = 1
	}
	n := 0
	if p.total > 0 {
		n = int(float64(maxConfetti) * float64(p.remaining) / float64(p.total))
	}
	p.confetti = p.confetti[:0]
	for i := 0; i < n; i++ {
		p.confetti = append(p.confetti, particle{
			x:     rng.IntN(width),
			y:     rng.IntN(confettiRows),
			glyph: confettiGlyphs[rng.IntN(len(confettiGlyphs))],
			hue:   confettiHues[rng.IntN(len(confettiHues))],
		})
	}
}

func (p *party) render(width int) string {
	if width < 1 {
		width = 1
	}
	grid := make([][]string, confettiRows)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, c := range p.confetti {
		if c.x < width && c.y < confettiRows {
			grid[c.y][c.x] = lipgloss.NewStyle().Foreground(c.hue).Render(string(c.glyph))
		}
	}
	lines := make([]string, confettiRows)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
