package internal

import (
	"fmt"
	"io"
	"os"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Route processes one input record end to end: field scan, domain split,
// timestamp extraction, path resolution and the append write. Records with
// an unusable identifier are dropped silently; timestamp and filesystem
// failures are returned to the caller for diagnosis. No failure is fatal.
func (a *App) Route(entry string) error {
	domain, payload, ok := SplitFields(entry)
	if !ok {
		a.publish(StatEvent{Outcome: OutcomeNoDomain})
		return nil
	}

	secondLevel, ok := SecondLevel(SplitDomain(domain))
	if !ok {
		a.publish(StatEvent{Outcome: OutcomeNoDomain, Domain: domain})
		return nil
	}

	ts, err := ExtractTimestamp(payload)
	if err != nil {
		a.publish(StatEvent{Outcome: OutcomeBadTimestamp, Domain: domain})
		return fmt.Errorf("entry for %s: %w", domain, err)
	}

	dir := LogDir(a.Config, secondLevel, ts)

	// One directory level only; the second-level-domain directory above it
	// is provisioned outside this process. A failure other than "already
	// exists" is tolerated here and surfaces through the open below.
	_ = os.Mkdir(dir, dirPerm)

	if err := appendEntry(LogFile(dir, domain), payload); err != nil {
		a.publish(StatEvent{Outcome: OutcomeWriteError, Domain: domain})
		return fmt.Errorf("entry for %s: %w", domain, err)
	}

	a.publish(StatEvent{Outcome: OutcomeRouted, Domain: domain, SourceIp: firstField(payload)})
	return nil
}

// appendEntry appends the payload plus a newline terminator to the log file,
// creating it on first use. One open/write/close cycle per record keeps
// cross-process appends intact.
func appendEntry(path, payload string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	err = writeFull(f, []byte(payload))
	if err == nil {
		err = writeFull(f, []byte{'\n'})
	}

	if cerr := f.Close(); err == nil && cerr != nil {
		return fmt.Errorf("close %s: %w", path, cerr)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeFull retries short writes, advancing the buffer offset, until the
// whole buffer is flushed or the writer reports an error.
func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// firstField returns the payload up to the first space, which in common and
// combined log formats is the client address. Best effort, stats only.
func firstField(payload string) string {
	return payload[:findFirst(payload, fieldDelim, 0)]
}
