package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "text", &buf)

	logger.Info("staging workflow", "workflow", "bsseq")

	output := buf.String()
	if !strings.Contains(output, "staging workflow") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, "workflow=bsseq") {
		t.Errorf("expected workflow=bsseq in output, got: %s", output)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "json", &buf)

	logger.Info("staging workflow", "workflow", "bsseq")

	output := buf.String()
	if !strings.Contains(output, `"msg":"staging workflow"`) {
		t.Errorf("expected JSON msg field, got: %s", output)
	}
	if !strings.Contains(output, `"workflow":"bsseq"`) {
		t.Errorf("expected JSON workflow field, got: %s", output)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("warn", "text", &buf)

	logger.Info("filtered")
	logger.Warn("kept")

	output := buf.String()
	if strings.Contains(output, "filtered") {
		t.Errorf("INFO message should be filtered at warn level, got: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Errorf("WARN message should appear, got: %s", output)
	}
}

func TestNewWithWriter_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("nonsense", "text", &buf)

	logger.Debug("hidden")
	logger.Info("visible")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("DEBUG should be filtered at default level, got: %s", output)
	}
	if !strings.Contains(output, "visible") {
		t.Errorf("INFO should appear at default level, got: %s", output)
	}
}
