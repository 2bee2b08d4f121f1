package pin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDigit(t *testing.T) {
	t.Parallel()

	for r := '0'; r <= '9'; r++ {
		d, err := ParseDigit(r)
		require.NoError(t, err)
		require.Equal(t, r, d.Rune())
	}

	for _, r := range []rune{'a', ' ', '-', '٣', '/', ':'} {
		_, err := ParseDigit(r)
		require.ErrorIs(t, err, ErrValidation, "rune %q", r)
	}
}

func TestDigitFromInt(t *testing.T) {
	t.Parallel()

	d, err := DigitFromInt(7)
	require.NoError(t, err)
	require.Equal(t, "7", d.String())

	_, err = DigitFromInt(10)
	require.ErrorIs(t, err, ErrValidation)
	_, err = DigitFromInt(-1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		wantErr bool
	}{
		{in: "123"},
		{in: "007"},
		{in: "000"},
		{in: "", wantErr: true},
		{in: "12", wantErr: true},
		{in: "1234", wantErr: true},
		{in: "12a", wantErr: true},
		{in: " 12", wantErr: true},
		{in: "1.2", wantErr: true},
	}
	for _, tc := range cases {
		p, err := Parse(tc.in)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.in)
			require.True(t, errors.Is(err, ErrValidation))
			require.True(t, p.IsZero())
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.in, p.String())
	}
}

func TestParseWrongLengthMessage(t *testing.T) {
	t.Parallel()

	_, err := Parse("12")
	require.EqualError(t, err, "PIN must be exactly 3 digits")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	ve.Msg = "changed"

	_, err = FromDigits([]Digit{1})
	require.EqualError(t, err, "PIN must be exactly 3 digits")
}

func TestDigitValidate(t *testing.T) {
	t.Parallel()

	for d := Digit(0); d <= 9; d++ {
		require.NoError(t, d.Validate())
	}
	err := Digit(12).Validate()
	require.ErrorIs(t, err, ErrValidation)
	require.EqualError(t, err, "12 is not a digit 0-9")

	_, err = DigitFromInt(12)
	require.EqualError(t, err, "12 is not a digit 0-9")
}

func TestFromDigits(t *testing.T) {
	t.Parallel()

	p, err := FromDigits([]Digit{0, 0, 7})
	require.NoError(t, err)
	require.Equal(t, Pin("007"), p)

	_, err = FromDigits([]Digit{1, 2})
	require.ErrorIs(t, err, ErrValidation)

	_, err = FromDigits([]Digit{1, 2, 12})
	require.ErrorIs(t, err, ErrValidation)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	require.True(t, Pin("482").Matches("482"))
	require.False(t, Pin("482").Matches("481"))
	require.False(t, Pin("482").Matches(""))
	require.False(t, Pin("").Matches(""))
}
