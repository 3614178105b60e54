package normalize

import "strings"

// Labels trims, lowercases and de-duplicates free-form labels such as
// skills and tags, keeping first-seen order and dropping blanks.
func Labels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		label := strings.ToLower(strings.Join(strings.Fields(raw), " "))
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// Text trims surrounding whitespace and reports whether anything is left.
func Text(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
