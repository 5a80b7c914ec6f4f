// Package staging materializes the local artifacts a workflow submission
// needs: the WDL definition, an optional zip of its imports, and the inputs
// JSON document. Everything is written to the destination directory; nothing
// here talks to the server.
package staging

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/me/methseq/internal/workflows"
)

// StagedWorkflow holds the paths of the artifacts produced by Stage.
type StagedWorkflow struct {
	Definition string
	Imports    string // empty when the workflow has no imports
	Inputs     string
}

// Stage writes the workflow definition, its imports archive (when the
// registry declares imports), and the inputs document into destDir. The
// inputs document is written with sorted keys and fixed indentation so
// repeated stagings of the same inputs diff cleanly.
func Stage(entry workflows.Entry, inputs map[string]any, destDir string) (*StagedWorkflow, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination %s: %w", destDir, err)
	}

	def, err := entry.DefinitionFile()
	if err != nil {
		return nil, fmt.Errorf("load definition: %w", err)
	}
	defPath := filepath.Join(destDir, def.Name)
	if err := os.WriteFile(defPath, def.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write definition: %w", err)
	}

	importsPath, err := writeImports(entry, destDir)
	if err != nil {
		return nil, err
	}

	inputsPath := filepath.Join(destDir, entry.InputsFile)
	doc, err := json.MarshalIndent(inputs, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode inputs: %w", err)
	}
	if err := os.WriteFile(inputsPath, append(doc, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("write inputs: %w", err)
	}

	return &StagedWorkflow{
		Definition: defPath,
		Imports:    importsPath,
		Inputs:     inputsPath,
	}, nil
}

// writeImports bundles the workflow's import definitions into
// <name>.imports.zip. A workflow without imports produces no archive and an
// empty path.
func writeImports(entry workflows.Entry, destDir string) (string, error) {
	files, err := entry.ImportFiles()
	if err != nil {
		return "", fmt.Errorf("load imports: %w", err)
	}
	if len(files) == 0 {
		return "", nil
	}

	path := filepath.Join(destDir, entry.Name+".imports.zip")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create imports archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.Name)
		if err != nil {
			return "", fmt.Errorf("archive %s: %w", file.Name, err)
		}
		if _, err := w.Write(file.Data); err != nil {
			return "", fmt.Errorf("archive %s: %w", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize imports archive: %w", err)
	}

	return path, nil
}
