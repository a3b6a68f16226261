package internal

// Only the plain space byte delimits fields; tabs and other whitespace are
// ordinary payload characters.
const fieldDelim = ' '

// findFirst returns the index of the first occurrence of delim at or after
// start, or len(s) when delim does not occur.
func findFirst(s string, delim byte, start int) int {
	for pos := start; pos < len(s); pos++ {
		if s[pos] == delim {
			return pos
		}
	}
	return len(s)
}

// findUntil returns the index of the first character at or after start that
// is not until, or len(s) when the rest of the string is all until.
func findUntil(s string, until byte, start int) int {
	for pos := start; pos < len(s); pos++ {
		if s[pos] != until {
			return pos
		}
	}
	return len(s)
}

// SplitFields locates the tenant identifier and the access-log payload in a
// raw record: leading spaces are skipped, the identifier is the following
// run of non-space characters, and the payload starts at the next non-space
// character. ok is false when the record holds no identifier/payload pair.
func SplitFields(entry string) (domain, payload string, ok bool) {
	domainStart := findUntil(entry, fieldDelim, 0)
	domainEnd := findFirst(entry, fieldDelim, domainStart)
	payloadStart := findUntil(entry, fieldDelim, domainEnd)

	if payloadStart >= len(entry) || domainStart >= domainEnd {
		return "", "", false
	}
	return entry[domainStart:domainEnd], entry[payloadStart:], true
}
