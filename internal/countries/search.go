package countries

import "strings"

// Search filters the reference list for the phone picker: a
// case-insensitive substring match against the country name, or a plain
// substring match against the dial string (so "+6", "61" and "Austr"
// all narrow the list). An empty query returns the full list.
func Search(query string) []Country {
	if query == "" {
		return All()
	}

	q := strings.ToLower(query)
	var out []Country
	for _, c := range countryList {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Dial, query) {
			out = append(out, c)
		}
	}
	return out
}
