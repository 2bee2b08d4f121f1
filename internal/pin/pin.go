package pin

import "fmt"

// Length is the number of digits in a complete PIN.
const Length = 3

// Digit is a single decimal digit, 0 through 9.
type Digit uint8

// ParseDigit validates a keypad rune.
func ParseDigit(r rune) (Digit, error) {
	if r < '0' || r > '9' {
		return 0, &ValidationError{Msg: fmt.Sprintf("%q is not a digit 0-9", r)}
	}
	return Digit(r - '0'), nil
}

// DigitFromInt validates a numeric keypad value.
func DigitFromInt(n int) (Digit, error) {
	if n < 0 || n > 9 {
		return 0, notADigit(n)
	}
	return Digit(n), nil
}

// Validate fails with a ValidationError when d is outside 0-9.
func (d Digit) Validate() error {
	if d > 9 {
		return notADigit(int(d))
	}
	return nil
}

// Rune returns the ASCII character for d.
func (d Digit) Rune() rune { return '0' + rune(d) }

func (d Digit) String() string { return string(d.Rune()) }

// Pin is a complete 3-digit secret. The zero value means "no pin".
// Leading zeros are significant: "007" and "7" are different values,
// and only the former is a Pin.
type Pin string

// Parse accepts exactly Length ASCII digits and nothing else.
// Input is not trimmed or filtered.
func Parse(s string) (Pin, error) {
	if len(s) != Length {
		return "", wrongLength()
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", &ValidationError{Msg: fmt.Sprintf("PIN may only contain digits, got %q", s)}
		}
	}
	return Pin(s), nil
}

// FromDigits builds a Pin from exactly Length digits.
func FromDigits(ds []Digit) (Pin, error) {
	if len(ds) != Length {
		return "", wrongLength()
	}
	buf := make([]byte, 0, Length)
	for _, d := range ds {
		if err := d.Validate(); err != nil {
			return "", err
		}
		buf = append(buf, byte(d.Rune()))
	}
	return Pin(buf), nil
}

func (p Pin) String() string { return string(p) }

// IsZero reports whether p holds no value.
func (p Pin) IsZero() bool { return p == "" }

// Matches is exact, full-string equality. A zero Pin matches nothing.
func (p Pin) Matches(other Pin) bool {
	return !p.IsZero() && p == other
}
