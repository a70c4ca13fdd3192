package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	return path
}

func TestLoadFileSource(t *testing.T) {
	path := writeConfig(t, `{
		"report": "cohort",
		"source": "file",
		"input": "export.jsonl",
		"output-csv": "cohort.csv",
		"log-level": "INFO"
	}`)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "cohort", cfg.Report)
	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, "export.jsonl", cfg.Input)
	assert.Equal(t, "cohort.csv", cfg.OutputCSV)
}

func TestLoadMissingRequiredField(t *testing.T) {
	path := writeConfig(t, `{"report": "cohort", "source": "file"}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "log-level")
}

func TestValidateFileSourceNeedsInput(t *testing.T) {
	path := writeConfig(t, `{
		"report": "cohort",
		"source": "file",
		"output-csv": "cohort.csv",
		"log-level": "INFO"
	}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "input")
}

func TestValidateQueueSourceNeedsBroker(t *testing.T) {
	path := writeConfig(t, `{
		"report": "rfm",
		"source": "queue",
		"output-csv": "rfm.csv",
		"log-level": "INFO"
	}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "middleware-address")
}

func TestValidateNeedsSomeOutput(t *testing.T) {
	path := writeConfig(t, `{
		"report": "rfm",
		"source": "file",
		"input": "export.jsonl",
		"log-level": "INFO"
	}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "output")
}

func TestValidateUnknownSource(t *testing.T) {
	path := writeConfig(t, `{
		"report": "rfm",
		"source": "carrier-pigeon",
		"output-csv": "rfm.csv",
		"log-level": "INFO"
	}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown source")
}
