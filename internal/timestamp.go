package internal

import (
	"errors"
	"fmt"
)

// The date & time signature is [DD/Mon/YYYY:HH:MM:SS +OOOO], 28 bytes with
// literal separators at fixed offsets.
const signatureLen = 28

var (
	ErrTimestampNotFound = errors.New("date & time signature not found")
	ErrTimestampFields   = errors.New("invalid date & time fields")
)

var monthTable = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4,
	"May": 5, "Jun": 6, "Jul": 7, "Aug": 8,
	"Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// signatureAt reports whether a bracket-shaped date & time region starts at
// position pos: only the literal separators are checked here, field content
// is validated during the parse.
func signatureAt(payload string, pos int) bool {
	if pos+signatureLen > len(payload) {
		return false
	}
	s := payload[pos : pos+signatureLen]
	return s[0] == '[' && s[3] == '/' && s[7] == '/' &&
		s[12] == ':' && s[15] == ':' && s[18] == ':' &&
		s[21] == ' ' && s[27] == ']'
}

// decDecode parses a fixed-width run of decimal digits.
func decDecode(s string) (int, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("%w: empty number", ErrTimestampFields)
	}
	val := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrTimestampFields, s)
		}
		val = val*10 + int(s[i]-'0')
	}
	return val, nil
}

// monthDecode maps a 3-letter English month abbreviation to its 1-based
// number. The match is exact and case-sensitive.
func monthDecode(month string) (int, error) {
	if num, ok := monthTable[month]; ok {
		return num, nil
	}
	return 0, fmt.Errorf("%w: invalid month %q", ErrTimestampFields, month)
}

// offsetDecode parses a UTC offset token: a sign character followed by four
// decimal digits, kept as a raw signed decimal value ("+0230" -> 230).
func offsetDecode(s string) (int, error) {
	if len(s) != 5 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("%w: invalid offset %q", ErrTimestampFields, s)
	}
	val, err := decDecode(s[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid offset %q", ErrTimestampFields, s)
	}
	if s[0] == '-' {
		return -val, nil
	}
	return val, nil
}

// ExtractTimestamp locates the first bracket-shaped date & time region in
// the payload and decodes its seven fields. A payload without any such
// region yields ErrTimestampNotFound; a region whose fields do not parse
// (non-digit runs, unknown month, malformed offset) yields a field error.
func ExtractTimestamp(payload string) (Timestamp, error) {
	pos := -1
	for i := 0; i+signatureLen <= len(payload); i++ {
		if signatureAt(payload, i) {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Timestamp{}, ErrTimestampNotFound
	}

	s := payload[pos : pos+signatureLen]

	var ts Timestamp
	var err error
	if ts.Day, err = decDecode(s[1:3]); err != nil {
		return Timestamp{}, err
	}
	if ts.Month, err = monthDecode(s[4:7]); err != nil {
		return Timestamp{}, err
	}
	if ts.Year, err = decDecode(s[8:12]); err != nil {
		return Timestamp{}, err
	}
	if ts.Hour, err = decDecode(s[13:15]); err != nil {
		return Timestamp{}, err
	}
	if ts.Minute, err = decDecode(s[16:18]); err != nil {
		return Timestamp{}, err
	}
	if ts.Second, err = decDecode(s[19:21]); err != nil {
		return Timestamp{}, err
	}
	if ts.Offset, err = offsetDecode(s[22:27]); err != nil {
		return Timestamp{}, err
	}
	return ts, nil
}
