package references

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeReferenceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "genome.fa"), []byte(">chr1\nACGT\n"), 0o644); err != nil {
		t.Fatalf("write genome: %v", err)
	}
	for _, sub := range []string{"CT_conversion", "GA_conversion"} {
		idxDir := filepath.Join(dir, "Bisulfite_Genome", sub)
		if err := os.MkdirAll(idxDir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", sub, err)
		}
		if err := os.WriteFile(filepath.Join(idxDir, "index.1.bt2"), []byte("idx"), 0o644); err != nil {
			t.Fatalf("write index: %v", err)
		}
	}
	return dir
}

func TestCollect_ValidDirectory(t *testing.T) {
	dir := makeReferenceDir(t)

	ref, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(ref.GenomeFiles) != 1 || filepath.Base(ref.GenomeFiles[0]) != "genome.fa" {
		t.Errorf("GenomeFiles = %v", ref.GenomeFiles)
	}
	if len(ref.IndexFilesCT) != 1 || len(ref.IndexFilesGA) != 1 {
		t.Errorf("index files = CT:%v GA:%v", ref.IndexFilesCT, ref.IndexFilesGA)
	}
}

func TestCollect_NoFasta(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Bisulfite_Genome"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	_, err := Collect(dir)
	if err == nil || !strings.Contains(err.Error(), "no genome FASTA files") {
		t.Fatalf("err = %v, want no-FASTA error", err)
	}
}

func TestCollect_MissingBisulfiteGenome(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "genome.fasta"), []byte(">chr1\n"), 0o644); err != nil {
		t.Fatalf("write genome: %v", err)
	}

	_, err := Collect(dir)
	if err == nil || !strings.Contains(err.Error(), "Bisulfite_Genome") {
		t.Fatalf("err = %v, want missing Bisulfite_Genome error", err)
	}
}

func TestCollect_IgnoresNonFasta(t *testing.T) {
	dir := makeReferenceDir(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ref, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, g := range ref.GenomeFiles {
		if strings.HasSuffix(g, ".txt") {
			t.Errorf("non-FASTA file collected: %s", g)
		}
	}
}
