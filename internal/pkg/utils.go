package pkg

import "strings"

// ContainsAny reports whether s matches any pattern, case-insensitively. A
// pattern ending in "*" matches as a prefix, anything else as a substring.
func ContainsAny(s string, xs []string) bool {
	s = strings.ToLower(s)

	for _, x := range xs {
		x = strings.ToLower(x)

		if strings.HasSuffix(x, "*") {
			prefix := strings.TrimSuffix(x, "*")
			if strings.HasPrefix(s, prefix) {
				return true
			}
			continue
		}

		if strings.Contains(s, x) {
			return true
		}
	}

	return false
}
