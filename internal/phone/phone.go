// Package phone holds the canonical representation of a phone number as
// captured by the enquiry form: a digits-only dial code plus a
// digits-only subscriber number. The "+" exists in exactly one place,
// added at final assembly.
package phone

import "strings"

// Value is the normalized {dialCode, number} pair. Both fields contain
// only the characters 0-9; construct via New or the Set methods to keep
// that invariant.
type Value struct {
	DialCode string `json:"dialCode"`
	Number   string `json:"number"`
}

// New builds a Value, stripping non-digits from both parts. A dial code
// arriving with a display "+" (as the country picker's records carry)
// is canonicalized here.
func New(dialCode, number string) Value {
	return Value{
		DialCode: Digits(dialCode),
		Number:   Digits(number),
	}
}

// WithNumber returns a copy with the subscriber number replaced,
// stripping non-digits. Applied on every keystroke-equivalent update,
// so "12a3-4" stores as "1234".
func (v Value) WithNumber(number string) Value {
	v.Number = Digits(number)
	return v
}

// WithDialCode returns a copy with the dial code replaced, stripping
// non-digits.
func (v Value) WithDialCode(dialCode string) Value {
	v.DialCode = Digits(dialCode)
	return v
}

// String assembles the wire form "+<dialCode><number>". With canonical
// digits-only parts the "+" appears exactly once.
func (v Value) String() string {
	return "+" + v.DialCode + v.Number
}

// Empty reports whether no subscriber number has been entered. The form
// treats the number as its only required phone component.
func (v Value) Empty() bool {
	return v.Number == ""
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
