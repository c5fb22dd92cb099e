// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog sets up the per-run process log: a plain-text file written
// next to the input PDF, mirrored to the console, so every run leaves a
// record of what it did.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Path returns the process log location for an input file:
// <dir>/<stem>_process.log next to the input.
func Path(inputPath string) string {
	dir := filepath.Dir(inputPath)
	stem := Stem(inputPath)
	return filepath.Join(dir, stem+"_process.log")
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Open creates (or truncates) the process log for inputPath and returns a
// logger that writes to the file and, when console is non-nil, mirrors to
// it. The caller closes the returned file when the run ends.
func Open(inputPath string, console io.Writer) (*slog.Logger, io.Closer, error) {
	path := Path(inputPath)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating process log %s: %w", path, err)
	}

	var w io.Writer = f
	if console != nil {
		w = io.MultiWriter(f, console)
	}

	log := slog.New(slog.NewTextHandler(w, nil))
	log.Info("process started", "input", inputPath)
	return log, f, nil
}
