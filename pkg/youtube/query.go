package youtube

import "strings"

const queryMaxLen = 50

// punctuation stripped from idea titles before they become search terms.
const strippedPunctuation = `"'?!:;,()[]{}`

// BuildQueryTerm derives a search string from an idea title: strips
// punctuation, collapses repeated dots and whitespace, and truncates long
// titles at the last whole word under the length cap.
func BuildQueryTerm(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	term := b.String()
	for strings.Contains(term, "..") {
		term = strings.ReplaceAll(term, "..", ".")
	}
	term = strings.Join(strings.Fields(term), " ")

	if len(term) <= queryMaxLen {
		return term
	}

	cut := term[:queryMaxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
