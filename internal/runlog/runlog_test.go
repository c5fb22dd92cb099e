// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathAndStem(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantStem string
		wantPath string
	}{
		{
			name:     "simple name",
			input:    filepath.Join("docs", "Report.pdf"),
			wantStem: "Report",
			wantPath: filepath.Join("docs", "Report_process.log"),
		},
		{
			name:     "dotted stem",
			input:    filepath.Join("in", "v1.4.report.pdf"),
			wantStem: "v1.4.report",
			wantPath: filepath.Join("in", "v1.4.report_process.log"),
		},
		{
			name:     "unicode stem",
			input:    "Informe_año.pdf",
			wantStem: "Informe_año",
			wantPath: "Informe_año_process.log",
		},
		{
			name:     "no extension",
			input:    "README",
			wantStem: "README",
			wantPath: "README_process.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stem(tt.input); got != tt.wantStem {
				t.Errorf("Stem(%q) = %q, want %q", tt.input, got, tt.wantStem)
			}
			if got := Path(tt.input); got != tt.wantPath {
				t.Errorf("Path(%q) = %q, want %q", tt.input, got, tt.wantPath)
			}
		})
	}
}

func TestOpenWritesAndMirrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Report.pdf")

	var console bytes.Buffer
	log, closer, err := Open(input, &console)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	log.Info("stage done", "pages", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Report_process.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	content := string(data)

	for _, want := range []string{"process started", "stage done", "pages=3"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
	if console.String() != content {
		t.Errorf("console mirror differs from log file")
	}
}

func TestOpenFileOnly(t *testing.T) {
	input := filepath.Join(t.TempDir(), "x.pdf")
	log, closer, err := Open(input, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Info("quiet")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
}
