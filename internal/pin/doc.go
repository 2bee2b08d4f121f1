// Package pin holds the value types of the escape room: a Digit typed on
// the keypad and a complete 3-digit Pin. Both are only obtainable through
// validating constructors, so code past the input edge never sees a
// malformed value.
package pin
