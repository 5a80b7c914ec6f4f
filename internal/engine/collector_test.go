package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/methseq/internal/cromwell"
	"github.com/me/methseq/internal/logging"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCollector_CopiesExistingSkipsMissing(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	bam := writeFile(t, src, "x.bam", "bam-data")
	log1 := writeFile(t, src, "y.log", "log-data")
	missing := filepath.Join(src, "missing.log")

	var buf bytes.Buffer
	c := &Collector{Dest: dest, Logger: logging.NewWithWriter("info", "text", &buf)}

	outputs := []cromwell.Output{
		{Name: "bsseq.bam", Value: cromwell.SingleValue(bam)},
		{Name: "bsseq.logs", Value: cromwell.ManyValue(log1, missing)},
	}
	if err := c.Collect(outputs); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	for _, name := range []string{"x.bam", "y.log"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("expected %s in destination: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dest, "missing.log")); !os.IsNotExist(err) {
		t.Errorf("missing.log should not be in destination")
	}

	logged := buf.String()
	if !strings.Contains(logged, "output file not found") || !strings.Contains(logged, "missing.log") {
		t.Errorf("expected missing-output warning, got: %s", logged)
	}

	// Sources stay put in copy mode.
	if _, err := os.Stat(bam); err != nil {
		t.Errorf("source removed in copy mode: %v", err)
	}
}

func TestCollector_PreservesReportedOrder(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	a := writeFile(t, src, "a.txt", "a")
	b := writeFile(t, src, "b.txt", "b")
	cfile := writeFile(t, src, "c.txt", "c")

	var buf bytes.Buffer
	col := &Collector{Dest: dest, Logger: logging.NewWithWriter("info", "text", &buf)}

	outputs := []cromwell.Output{
		{Name: "wf.mixed", Value: cromwell.NestedValue(
			cromwell.SingleValue(a),
			cromwell.ManyValue(b, cfile),
		)},
	}
	if err := col.Collect(outputs); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	logged := buf.String()
	ia := strings.Index(logged, "a.txt")
	ib := strings.Index(logged, "b.txt")
	ic := strings.Index(logged, "c.txt")
	if ia < 0 || ib < 0 || ic < 0 || !(ia < ib && ib < ic) {
		t.Errorf("files not collected in reported order:\n%s", logged)
	}
}

func TestCollector_MoveRemovesSource(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	bam := writeFile(t, src, "x.bam", "bam-data")

	c := &Collector{Dest: dest, Move: true, Logger: testLogger()}
	outputs := []cromwell.Output{{Name: "wf.bam", Value: cromwell.SingleValue(bam)}}
	if err := c.Collect(outputs); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "x.bam")); err != nil {
		t.Errorf("expected moved file in destination: %v", err)
	}
	if _, err := os.Stat(bam); !os.IsNotExist(err) {
		t.Errorf("source should be gone after move, stat err = %v", err)
	}
}

func TestCollector_CopyModeIsIdempotent(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	bam := writeFile(t, src, "x.bam", "bam-data")

	c := &Collector{Dest: dest, Logger: testLogger()}
	outputs := []cromwell.Output{{Name: "wf.bam", Value: cromwell.SingleValue(bam)}}

	for i := 0; i < 2; i++ {
		if err := c.Collect(outputs); err != nil {
			t.Fatalf("Collect pass %d: %v", i+1, err)
		}
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("destination has %d entries, want 1", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(dest, "x.bam"))
	if err != nil {
		t.Fatalf("read collected file: %v", err)
	}
	if string(data) != "bam-data" {
		t.Errorf("collected content = %q, want bam-data", data)
	}
}
