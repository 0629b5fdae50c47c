package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/namecheck/internal/model"
)

const sampleSource = `class Helper:
    """Read records and parse records."""

    def read(self):
        pass

    def parse(self):
        pass


def calculate_total(items):
    """Calculate the total price of all items."""
    total = 0
    for item in items:
        total += item.price
    return total


def x(a, b):
    return a + b
`

func writeTestFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func createSample(t *testing.T) string {
	t.Helper()
	return writeTestFile(t, t.TempDir(), "shop.py", sampleSource)
}

func TestRunText(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--no-color", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v\nstderr: %s", err, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"Analyzing: " + path + "\n",
		"===== NAME RELEVANCE ANALYSIS =====",
		"CLASSES:\n  - Helper: 0.00/1.00 - Name is too generic\n",
		"  - calculate_total: 1.00/1.00 - Name reflects implementation well\n",
		"  - x: 0.20/1.00 - Name is too short\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Suggestion:") {
		t.Error("suggestions should only appear with -d")
	}
	if strings.Contains(out, "  - read:") || strings.Contains(out, "  - parse:") {
		t.Error("methods must not be reported as functions")
	}
}

func TestRunDetailed(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-d", "--no-color", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "    Suggestion: Consider: ReadRecordsParse\n") {
		t.Errorf("missing class suggestion:\n%s", stdout.String())
	}
}

func TestRunSave(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-s", "--no-color", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := filepath.Join(filepath.Dir(path), "shop_analysis.json")
	if !strings.Contains(stdout.String(), "\nResults saved to "+out+"\n") {
		t.Errorf("missing save notice:\n%s", stdout.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(r.Classes) != 1 || len(r.Functions) != 2 {
		t.Errorf("saved report = %+v", r)
	}
}

func TestRunJSON(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", "json", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(stdout.String(), "Analyzing:") {
		t.Error("json output must contain only the document")
	}

	var r model.Report
	if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout.String())
	}
	if r.Classes[0].Suggestion == nil || *r.Classes[0].Suggestion != "Consider: ReadRecordsParse" {
		t.Errorf("class suggestion = %v", r.Classes[0].Suggestion)
	}
	if r.Functions[0].Name != "calculate_total" || r.Functions[0].Suggestion != nil {
		t.Errorf("functions[0] = %+v", r.Functions[0])
	}
}

func TestRunYAML(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", "yaml", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	var r model.Report
	if err := yaml.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if len(r.Functions) != 2 {
		t.Errorf("functions = %+v", r.Functions)
	}
}

func TestRunTOON(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-o", "toon", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{
		"classes[1]{name,relevance_score,reasons,suggestion}:",
		"functions[2]{name,relevance_score,reasons,suggestion}:",
		"  calculate_total,1.0000,Name reflects implementation well,null",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRunWorst(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-w", "1", "--no-color", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "NEEDS ATTENTION:\n  - [class] Helper: 0.00/1.00") {
		t.Errorf("missing worst section:\n%s", out)
	}
	if strings.Contains(out, "[function] x") {
		t.Error("only one entry expected")
	}
}

func TestRunParseErrorJSON(t *testing.T) {
	t.Parallel()
	path := writeTestFile(t, t.TempDir(), "broken.py", "def broken(:\n    pass\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-o", "json", path}, &stdout, &stderr)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout.String())
	}
	if !strings.HasPrefix(doc["error"], "failed to parse the file") {
		t.Errorf("error = %q", doc["error"])
	}
}

func TestRunParseErrorText(t *testing.T) {
	t.Parallel()
	path := writeTestFile(t, t.TempDir(), "broken.py", "class :\n")

	var stdout, stderr bytes.Buffer
	err := run([]string{path}, &stdout, &stderr)
	if err == nil || errors.Is(err, errReported) {
		t.Fatalf("err = %v, want a parse error for stderr", err)
	}
	if !strings.Contains(err.Error(), "failed to parse the file") {
		t.Errorf("err = %v", err)
	}
}

func TestRunFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	txt := writeTestFile(t, dir, "notes.txt", "hello\n")
	missing := filepath.Join(dir, "missing.py")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", missing, "File '" + missing + "' not found."},
		{"not python", txt, "File '" + txt + "' is not a Python file."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			err := run([]string{tt.path}, &stdout, &stderr)
			if err == nil || err.Error() != tt.want {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout should be empty, got %q", stdout.String())
			}
		})
	}
}

func TestRunInvalidFlags(t *testing.T) {
	t.Parallel()
	path := createSample(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"-o", "xml", path}, "unsupported output format"},
		{"worst", []string{"-w", "-1", path}, "must not be negative"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.toml"), path}, "config file"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--version"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRunConfig(t *testing.T) {
	t.Parallel()
	path := createSample(t)
	cfgPath := writeTestFile(t, t.TempDir(), "namecheck.toml", `output = "json"
exclude = ["x"]
`)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--config", cfgPath, path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	var r model.Report
	if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("config output format not applied: %v\n%s", err, stdout.String())
	}
	if len(r.Functions) != 1 || r.Functions[0].Name != "calculate_total" {
		t.Errorf("exclude not applied: %+v", r.Functions)
	}
}

func TestRunFlagOverridesConfig(t *testing.T) {
	t.Parallel()
	path := createSample(t)
	cfgPath := writeTestFile(t, t.TempDir(), "namecheck.toml", "output = \"json\"\n")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--config", cfgPath, "-o", "text", "--no-color", path}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "Analyzing: ") {
		t.Errorf("flag should override config:\n%s", stdout.String())
	}
}

func TestRunCache(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeTestFile(t, dir, "shop.py", sampleSource)
	cachePath := filepath.Join(dir, "cache.json")

	var first, stderr bytes.Buffer
	if err := run([]string{"-o", "json", "--cache", cachePath, path}, &first, &stderr); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	var second bytes.Buffer
	stderr.Reset()
	if err := run([]string{"-o", "json", "-v", "--cache", cachePath, path}, &second, &stderr); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("cached output differs:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
	if !strings.Contains(stderr.String(), "cache hit") {
		t.Errorf("expected cache hit in log:\n%s", stderr.String())
	}

	writeTestFile(t, dir, "shop.py", "def fetch_user():\n    \"\"\"Fetch user.\"\"\"\n")
	var third bytes.Buffer
	if err := run([]string{"-o", "json", "--cache", cachePath, path}, &third, &stderr); err != nil {
		t.Fatalf("third run: %v", err)
	}
	if !strings.Contains(third.String(), "fetch_user") {
		t.Errorf("stale cache served after edit:\n%s", third.String())
	}
}
