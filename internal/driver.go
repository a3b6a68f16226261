package internal

import (
	"bufio"
	"io"
	"strings"
)

// Run consumes the input stream one newline-terminated record at a time
// until end of stream, routing every record. Per-record failures are
// reported on the diagnostic log and never stop the loop. A trailing record
// without a newline is still processed.
func (a *App) Run(r io.Reader) {
	reader := bufio.NewReader(r)

	for {
		entry, err := reader.ReadString('\n')
		entry = strings.TrimSuffix(entry, "\n")

		if entry != "" || err == nil {
			if rerr := a.Route(entry); rerr != nil {
				a.Log.WithError(rerr).Warn("could not process access log entry")
			}
		}

		if err != nil {
			if err != io.EOF {
				a.Log.WithError(err).Error("input stream failed")
			}
			return
		}
	}
}
