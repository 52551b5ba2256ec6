package domain

import "strings"

// NormalizeFamily maps an item name to its substitutes bucket.
//
// Rule: uppercase the name, blank out every character that is not a letter,
// then take the first space-delimited token of what remains. When
// nothing remains (all-digit names and the like) the uppercased name is its
// own bucket. "Toss Yellow", "TOSS blue 500g" and "toss-orange" all land in
// "TOSS". Approximate by construction; good enough for a storefront view.
func NormalizeFamily(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))

	var cleaned strings.Builder
	for _, r := range upper {
		if r >= 'A' && r <= 'Z' {
			cleaned.WriteRune(r)
		} else {
			cleaned.WriteRune(' ')
		}
	}

	token := strings.TrimSpace(cleaned.String())
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	if token == "" {
		return upper
	}
	return token
}
