package game

import (
	"strings"

	"github.com/jask/escaperoom/internal/pin"
)

// Buffer holds the digits typed so far. It never grows past pin.Length
// and never shrinks below empty.
type Buffer struct {
	digits [pin.Length]pin.Digit
	n      int
}

// Append adds d unless the buffer is full. It reports whether d was added.
func (b *Buffer) Append(d pin.Digit) bool {
	if b.n >= pin.Length {
		return false
	}
	b.digits[b.n] = d
	b.n++
	return true
}

// Pop removes the last digit, if any.
func (b *Buffer) Pop() bool {
	if b.n == 0 {
		return false
	}
	b.n--
	b.digits[b.n] = 0
	return true
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	*b = Buffer{}
}

func (b *Buffer) Len() int { return b.n }

func (b *Buffer) Full() bool { return b.n == pin.Length }

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, d := range b.digits[:b.n] {
		sb.WriteRune(d.Rune())
	}
	return sb.String()
}

// Pin returns the buffer as a complete Pin. It fails with a
// pin.ValidationError unless the buffer is full.
func (b *Buffer) Pin() (pin.Pin, error) {
	return pin.FromDigits(b.digits[:b.n])
}
