package workflows

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLookup_Known(t *testing.T) {
	entry, err := Lookup("bsseq")
	if err != nil {
		t.Fatalf("Lookup(bsseq): %v", err)
	}
	if entry.InputsFile != "bsseq.inputs.json" {
		t.Errorf("InputsFile = %q, want bsseq.inputs.json", entry.InputsFile)
	}
	if want := []string{"trim_galore", "bismark"}; !reflect.DeepEqual(entry.Imports, want) {
		t.Errorf("Imports = %v, want %v", entry.Imports, want)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("nosuch")
	if !errors.Is(err, ErrUnknownWorkflow) {
		t.Fatalf("err = %v, want ErrUnknownWorkflow", err)
	}
	if !strings.Contains(err.Error(), "nosuch") {
		t.Errorf("error should name the workflow, got: %v", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	got := Names()
	want := []string{"bsseq", "emseq", "qcreport"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestEntry_DefinitionFile(t *testing.T) {
	entry, err := Lookup("bsseq")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	def, err := entry.DefinitionFile()
	if err != nil {
		t.Fatalf("DefinitionFile: %v", err)
	}
	if def.Name != "bsseq.wdl" {
		t.Errorf("Name = %q, want bsseq.wdl", def.Name)
	}
	if !strings.Contains(string(def.Data), "workflow bsseq") {
		t.Errorf("definition does not declare workflow bsseq")
	}
}

func TestEntry_ImportFiles(t *testing.T) {
	entry, err := Lookup("emseq")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	files, err := entry.ImportFiles()
	if err != nil {
		t.Fatalf("ImportFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d import files, want 2", len(files))
	}
	if files[0].Name != "trim_galore.wdl" || files[1].Name != "bismark.wdl" {
		t.Errorf("import order = [%s, %s]", files[0].Name, files[1].Name)
	}
}

func TestEntry_NoImports(t *testing.T) {
	entry, err := Lookup("qcreport")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	files, err := entry.ImportFiles()
	if err != nil {
		t.Fatalf("ImportFiles: %v", err)
	}
	if files != nil {
		t.Errorf("ImportFiles = %v, want nil for workflow without imports", files)
	}
}
