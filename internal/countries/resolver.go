package countries

import "strings"

// ResolveCountry maps a dial code to a country display name. The input
// may carry a "+", whitespace, or other punctuation; every non-digit is
// stripped before matching. Resolution never fails: an unknown code
// degrades to "Unknown (+<digits>)".
//
// Where several territories share a calling code the first entry in
// list order wins. Canada precedes United States for +1, so bare "1"
// resolves to Canada; this matches the behaviour the marketing site has
// always had and downstream triage relies on the strings being stable.
func ResolveCountry(dialCode string) string {
	digits := stripNonDigits(dialCode)

	for _, c := range countryList {
		if c.Dial == "+"+digits {
			return c.Name
		}
	}

	// Tolerate entries whose dial field lacks the "+" prefix.
	for _, c := range countryList {
		if strings.TrimPrefix(c.Dial, "+") == digits {
			return c.Name
		}
	}

	return "Unknown (+" + digits + ")"
}

// ByDial returns the country record whose dial code matches the given
// digits (with or without a "+"), or false when none does.
func ByDial(dialCode string) (Country, bool) {
	digits := stripNonDigits(dialCode)
	for _, c := range countryList {
		if strings.TrimPrefix(c.Dial, "+") == digits {
			return c, true
		}
	}
	return Country{}, false
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
