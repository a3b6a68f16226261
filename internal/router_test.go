package internal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

// Helper to build an App against a throwaway destination tree with the
// example.com second-level directory pre-provisioned.
func newRouterTestApp(t *testing.T) *App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "example.com"), 0o755); err != nil {
		t.Fatalf("Failed to pre-provision domain directory: %v", err)
	}

	return &App{
		Config: &Config{RootPrefix: root},
		Log:    log,
	}
}

func readLogFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file %s: %v", path, err)
	}
	return string(data)
}

func TestRouteAppendsPayload(t *testing.T) {
	app := newRouterTestApp(t)

	entry := `www.example.com 203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET / HTTP/1.1" 200 512`
	if err := app.Route(entry); err != nil {
		t.Fatalf("Route() unexpected error: %v", err)
	}

	path := filepath.Join(app.Config.RootPrefix, "example.com", "logs", "2024-03", "www.example.com")
	want := `203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET / HTTP/1.1" 200 512` + "\n"
	if got := readLogFile(t, path); got != want {
		t.Errorf("log file content = %q, want %q", got, want)
	}
}

func TestRouteAppendsInOrder(t *testing.T) {
	app := newRouterTestApp(t)

	first := `www.example.com 203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET /a HTTP/1.1" 200 512`
	second := `www.example.com 203.0.113.6 - - [14/Mar/2024:10:22:32 +0000] "GET /b HTTP/1.1" 200 99`

	if err := app.Route(first); err != nil {
		t.Fatalf("Route(first) error: %v", err)
	}
	// Second call hits an already existing directory; must not fail.
	if err := app.Route(second); err != nil {
		t.Fatalf("Route(second) error: %v", err)
	}

	path := filepath.Join(app.Config.RootPrefix, "example.com", "logs", "2024-03", "www.example.com")
	want := `203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET /a HTTP/1.1" 200 512` + "\n" +
		`203.0.113.6 - - [14/Mar/2024:10:22:32 +0000] "GET /b HTTP/1.1" 200 99` + "\n"
	if got := readLogFile(t, path); got != want {
		t.Errorf("log file content = %q, want %q", got, want)
	}
}

func TestRouteSuffixInDirectory(t *testing.T) {
	app := newRouterTestApp(t)
	app.Config.Suffix = ".ssl"

	entry := `www.example.com x [14/Mar/2024:10:22:31 +0000] y`
	if err := app.Route(entry); err != nil {
		t.Fatalf("Route() unexpected error: %v", err)
	}

	path := filepath.Join(app.Config.RootPrefix, "example.com", "logs", "2024-03.ssl", "www.example.com")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected log file at %s: %v", path, err)
	}
}

func TestRouteSingleLabelDiscardedSilently(t *testing.T) {
	app := newRouterTestApp(t)
	app.StatChan = make(chan StatEvent, 1)

	entry := `localhost 127.0.0.1 - - [14/Mar/2024:10:22:31 +0000] "GET / HTTP/1.1" 200 512`
	if err := app.Route(entry); err != nil {
		t.Fatalf("Route() should be silent for single-label domains, got %v", err)
	}

	// Nothing may be written anywhere under the root.
	logs := filepath.Join(app.Config.RootPrefix, "example.com", "logs")
	if _, err := os.Stat(logs); !os.IsNotExist(err) {
		t.Errorf("no directory should have been created, stat err = %v", err)
	}

	ev := <-app.StatChan
	if ev.Outcome != OutcomeNoDomain {
		t.Errorf("stat outcome = %v, want OutcomeNoDomain", ev.Outcome)
	}
}

func TestRouteBadTimestampDiagnosed(t *testing.T) {
	app := newRouterTestApp(t)
	app.StatChan = make(chan StatEvent, 1)

	entry := `www.example.com 203.0.113.5 - - "GET / HTTP/1.1" 200 512`
	err := app.Route(entry)
	if !errors.Is(err, ErrTimestampNotFound) {
		t.Fatalf("Route() error = %v, want ErrTimestampNotFound", err)
	}

	logs := filepath.Join(app.Config.RootPrefix, "example.com", "logs")
	if _, serr := os.Stat(logs); !os.IsNotExist(serr) {
		t.Errorf("no directory should have been created, stat err = %v", serr)
	}

	ev := <-app.StatChan
	if ev.Outcome != OutcomeBadTimestamp {
		t.Errorf("stat outcome = %v, want OutcomeBadTimestamp", ev.Outcome)
	}
}

func TestRouteMissingParentDirectory(t *testing.T) {
	app := newRouterTestApp(t)
	app.StatChan = make(chan StatEvent, 1)

	// other.net was never provisioned under the root, so the single-level
	// directory creation and the subsequent open both fail.
	entry := `www.other.net 203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET / HTTP/1.1" 200 512`
	if err := app.Route(entry); err == nil {
		t.Fatal("Route() expected an error for a missing parent directory")
	}

	ev := <-app.StatChan
	if ev.Outcome != OutcomeWriteError {
		t.Errorf("stat outcome = %v, want OutcomeWriteError", ev.Outcome)
	}
}

func TestRoutePublishesRoutedEvent(t *testing.T) {
	app := newRouterTestApp(t)
	app.StatChan = make(chan StatEvent, 1)

	entry := `www.example.com 203.0.113.5 - - [14/Mar/2024:10:22:31 +0000] "GET / HTTP/1.1" 200 512`
	if err := app.Route(entry); err != nil {
		t.Fatalf("Route() unexpected error: %v", err)
	}

	ev := <-app.StatChan
	if ev.Outcome != OutcomeRouted {
		t.Errorf("stat outcome = %v, want OutcomeRouted", ev.Outcome)
	}
	if ev.Domain != "www.example.com" {
		t.Errorf("stat domain = %q, want www.example.com", ev.Domain)
	}
	if ev.SourceIp != "203.0.113.5" {
		t.Errorf("stat source ip = %q, want 203.0.113.5", ev.SourceIp)
	}
}

// shortWriter writes at most chunk bytes per call to exercise the
// short-write retry loop.
type shortWriter struct {
	buf   []byte
	chunk int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > w.chunk {
		n = w.chunk
	}
	w.buf = append(w.buf, p[:n]...)
	return n, nil
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteFull(t *testing.T) {
	w := &shortWriter{chunk: 3}
	payload := []byte("a longer payload than three bytes")

	if err := writeFull(w, payload); err != nil {
		t.Fatalf("writeFull() unexpected error: %v", err)
	}
	if string(w.buf) != string(payload) {
		t.Errorf("writeFull() wrote %q, want %q", w.buf, payload)
	}

	if err := writeFull(failingWriter{}, []byte("x")); err == nil {
		t.Error("writeFull() expected error from failing writer")
	}
}
