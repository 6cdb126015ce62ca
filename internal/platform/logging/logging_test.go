package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"airtime/internal/platform/logging"
)

func TestNewWriterHonoursLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logging.NewWriter(buf, "warn")
	log.Info("quiet")
	log.Warn("loud", "room", "alpha")
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "room=alpha") {
		t.Fatalf("warn record missing: %s", out)
	}
}

func TestNewWriterDefaultsToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	log := logging.NewWriter(buf, "nonsense")
	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output for default level: %s", buf.String())
	}
}

func TestNewCreatesLogFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state", "airtime.log")
	log, closer, err := logging.New(path, "info")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("expected record in log file, got %s", string(b))
	}
}
