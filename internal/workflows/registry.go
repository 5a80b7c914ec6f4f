package workflows

import (
	"embed"
	"errors"
	"fmt"
	"sort"
)

//go:embed assets/*.wdl
var assets embed.FS

// ErrUnknownWorkflow is returned when a workflow name is not registered.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// File is a workflow definition file ready to be staged.
type File struct {
	Name string // base name on disk
	Data []byte
}

// Entry describes one registered workflow: its packaged WDL definition, the
// inputs filename Cromwell expects for it, and the sub-workflow definitions
// it imports.
type Entry struct {
	Name       string
	definition string
	InputsFile string
	Imports    []string
}

// registry maps workflow names to their packaged definitions. Import-only
// definitions (trim_galore, bismark) are embedded but not submittable.
var registry = map[string]Entry{
	"bsseq": {
		Name:       "bsseq",
		definition: "bsseq.wdl",
		InputsFile: "bsseq.inputs.json",
		Imports:    []string{"trim_galore", "bismark"},
	},
	"emseq": {
		Name:       "emseq",
		definition: "emseq.wdl",
		InputsFile: "emseq.inputs.json",
		Imports:    []string{"trim_galore", "bismark"},
	},
	"qcreport": {
		Name:       "qcreport",
		definition: "qcreport.wdl",
		InputsFile: "qcreport.inputs.json",
	},
}

// Lookup resolves a workflow name against the registry.
func Lookup(name string) (Entry, error) {
	entry, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownWorkflow, name)
	}
	return entry, nil
}

// Names returns the registered workflow names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefinitionFile returns the workflow's own WDL definition.
func (e Entry) DefinitionFile() (File, error) {
	return readAsset(e.definition)
}

// ImportFiles returns the definitions of the workflow's imports in the
// order they are declared. An entry with no imports returns nil.
func (e Entry) ImportFiles() ([]File, error) {
	if len(e.Imports) == 0 {
		return nil, nil
	}
	files := make([]File, 0, len(e.Imports))
	for _, name := range e.Imports {
		f, err := readAsset(name + ".wdl")
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", name, err)
		}
		files = append(files, f)
	}
	return files, nil
}

func readAsset(name string) (File, error) {
	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return File{}, err
	}
	return File{Name: name, Data: data}, nil
}
