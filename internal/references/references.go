// Package references validates a Bismark reference-genome directory and
// collects the files a bisulfite workflow needs from it.
package references

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var fastaPattern = regexp.MustCompile(`\.(fa|fasta)$`)

// Reference holds the genome FASTA files and Bismark conversion indexes
// found in a reference directory.
type Reference struct {
	GenomeFiles  []string
	IndexFilesCT []string
	IndexFilesGA []string
}

// Collect validates that dir is a usable Bismark reference directory: at
// least one FASTA file plus a Bisulfite_Genome directory with CT and GA
// conversion indexes. All returned paths are absolute within dir.
func Collect(dir string) (*Reference, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read reference directory: %w", err)
	}

	var genomes []string
	for _, entry := range entries {
		if !entry.IsDir() && fastaPattern.MatchString(entry.Name()) {
			genomes = append(genomes, filepath.Join(dir, entry.Name()))
		}
	}
	if len(genomes) == 0 {
		return nil, fmt.Errorf("no genome FASTA files found in %s", dir)
	}

	bisulfiteDir := filepath.Join(dir, "Bisulfite_Genome")
	if _, err := os.Stat(bisulfiteDir); err != nil {
		return nil, fmt.Errorf("no Bisulfite_Genome directory found in %s", dir)
	}

	ct, err := listFiles(filepath.Join(bisulfiteDir, "CT_conversion"))
	if err != nil {
		return nil, err
	}
	ga, err := listFiles(filepath.Join(bisulfiteDir, "GA_conversion"))
	if err != nil {
		return nil, err
	}

	return &Reference{
		GenomeFiles:  genomes,
		IndexFilesCT: ct,
		IndexFilesGA: ga,
	}, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read index directory: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
