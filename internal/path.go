package internal

import "strconv"

// leadZero left-pads s with zeroes up to width characters. Strings whose
// first character is not a digit are returned unchanged, so the routine is
// safe to reuse on non-numeric path components.
func leadZero(s string, width int) string {
	if len(s) > 0 && (s[0] < '0' || s[0] > '9') {
		return s
	}
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// LogDir resolves the destination directory for one tenant and month:
// <root>/<second-level-domain>/logs/<YYYY>-<MM><suffix>. Pure function of
// the configuration and its arguments.
func LogDir(cfg *Config, secondLevel string, ts Timestamp) string {
	return cfg.RootPrefix + "/" + secondLevel + "/logs/" +
		leadZero(strconv.Itoa(ts.Year), 4) + "-" +
		leadZero(strconv.Itoa(ts.Month), 2) + cfg.Suffix
}

// LogFile resolves the destination file inside a LogDir result. The file is
// named after the full tenant identifier, not the second-level domain.
func LogFile(dir, domain string) string {
	return dir + "/" + domain
}
