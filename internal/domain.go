package internal

import "strings"

// SplitDomain breaks a tenant identifier into its dot-separated labels.
// Empty labels are preserved, so "a..b" yields three parts.
func SplitDomain(domain string) []string {
	return strings.Split(domain, ".")
}

// SecondLevel returns the last two labels joined with a dot, the directory
// key a tenant is grouped under. ok is false for identifiers with fewer
// than two labels.
func SecondLevel(parts []string) (string, bool) {
	if len(parts) < 2 {
		return "", false
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1], true
}
