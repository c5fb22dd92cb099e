// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docshift/internal/manifest"
	"github.com/pdiddy/docshift/pkg/types"
)

// fakeText implements TextExtractor with a canned document or error.
type fakeText struct {
	doc *types.Document
	err error
}

func (f *fakeText) Extract(pdfPath string, log *slog.Logger) (*types.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// fakeImages implements ImageExporter with canned results.
type fakeImages struct {
	imgs []types.ExtractedImage
	err  error
}

func (f *fakeImages) Export(pdfPath, destDir, stem string, keepAll bool, log *slog.Logger) ([]types.ExtractedImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.imgs, nil
}

// fakeDocx implements DocWriter, recording the write or failing.
type fakeDocx struct {
	err    error
	called bool
	imgs   int
}

func (f *fakeDocx) Write(doc *types.Document, imgs []types.ExtractedImage, outPath string, fm types.Format, log *slog.Logger) error {
	f.called = true
	f.imgs = len(imgs)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("docx"), 0o644)
}

// setupPDF creates a placeholder input PDF in a temp dir.
func setupPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Report.pdf")
	if err := os.WriteFile(path, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func twoPageDoc(src string) *types.Document {
	return &types.Document{
		Source: src,
		Pages: []types.Page{
			{Number: 1, Lines: []string{"first page"}},
			{Number: 2, Lines: []string{"second page"}},
		},
	}
}

func TestConvertFile(t *testing.T) {
	imgs := []types.ExtractedImage{
		{Path: "Report_p1_chart1.png", Page: 1, Index: 1, Chart: true},
	}

	tests := []struct {
		name       string
		text       *fakeText
		images     *fakeImages
		docx       *fakeDocx
		preCreate  bool
		force      bool
		wantStatus types.RunStatus
		wantLog    string
		wantImages int
	}{
		{
			name:       "successful conversion",
			text:       &fakeText{doc: twoPageDoc("")},
			images:     &fakeImages{imgs: imgs},
			docx:       &fakeDocx{},
			wantStatus: types.RunConverted,
			wantLog:    "converted:",
			wantImages: 1,
		},
		{
			name:       "skip existing docx",
			text:       &fakeText{doc: twoPageDoc("")},
			images:     &fakeImages{},
			docx:       &fakeDocx{},
			preCreate:  true,
			wantStatus: types.RunSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force overwrites existing docx",
			text:       &fakeText{doc: twoPageDoc("")},
			images:     &fakeImages{imgs: imgs},
			docx:       &fakeDocx{},
			preCreate:  true,
			force:      true,
			wantStatus: types.RunConverted,
			wantLog:    "converted:",
			wantImages: 1,
		},
		{
			name:       "text extraction failure",
			text:       &fakeText{err: errors.New("bad xref")},
			images:     &fakeImages{},
			docx:       &fakeDocx{},
			wantStatus: types.RunFailed,
			wantLog:    "failed:",
		},
		{
			name:       "image failure degrades to text only",
			text:       &fakeText{doc: twoPageDoc("")},
			images:     &fakeImages{err: errors.New("broken stream")},
			docx:       &fakeDocx{},
			wantStatus: types.RunConverted,
			wantLog:    "converted:",
			wantImages: 0,
		},
		{
			name:       "docx write failure",
			text:       &fakeText{doc: twoPageDoc("")},
			images:     &fakeImages{},
			docx:       &fakeDocx{err: errors.New("disk full")},
			wantStatus: types.RunFailed,
			wantLog:    "failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath := setupPDF(t)
			if tt.preCreate {
				if err := os.WriteFile(DocxPath(pdfPath), []byte("old"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			st := Stages{Text: tt.text, Images: tt.images, Docx: tt.docx}
			opts := types.RunOptions{Format: types.DefaultFormat(), Force: tt.force}

			var out bytes.Buffer
			rec := ConvertFile(st, pdfPath, opts, io.Discard, &out)

			if rec.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", rec.Status, tt.wantStatus)
			}
			if !strings.Contains(out.String(), tt.wantLog) {
				t.Errorf("output %q missing %q", out.String(), tt.wantLog)
			}
			if len(rec.Images) != tt.wantImages {
				t.Errorf("recorded %d images, want %d", len(rec.Images), tt.wantImages)
			}

			if tt.wantStatus == types.RunConverted {
				if rec.DocxPath == "" {
					t.Error("record missing docx path")
				}
				if rec.Pages != 2 {
					t.Errorf("pages = %d, want 2", rec.Pages)
				}
				if tt.docx.imgs != tt.wantImages {
					t.Errorf("writer received %d images, want %d", tt.docx.imgs, tt.wantImages)
				}
			}
			if tt.wantStatus == types.RunSkipped && tt.docx.called {
				t.Error("writer ran on a skipped file")
			}
			if tt.wantStatus != types.RunSkipped {
				if _, err := os.Stat(rec.LogPath); err != nil {
					t.Errorf("process log not written: %v", err)
				}
			}
		})
	}
}

func TestConvertFileWritesManifest(t *testing.T) {
	pdfPath := setupPDF(t)
	st := Stages{
		Text:   &fakeText{doc: twoPageDoc(pdfPath)},
		Images: &fakeImages{},
		Docx:   &fakeDocx{},
	}
	opts := types.RunOptions{Format: types.DefaultFormat(), WriteManifest: true}

	rec := ConvertFile(st, pdfPath, opts, io.Discard, io.Discard)
	if rec.Status != types.RunConverted {
		t.Fatalf("status = %q", rec.Status)
	}

	got, err := manifest.Read(manifest.Path(pdfPath))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	if got.Source != pdfPath || got.Status != types.RunConverted || got.Pages != 2 {
		t.Errorf("manifest mismatch: %+v", got)
	}
}

func TestConvertBatch(t *testing.T) {
	good := setupPDF(t)
	bad := filepath.Join(t.TempDir(), "Broken.pdf")
	if err := os.WriteFile(bad, []byte("fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	st := Stages{
		Text: textFunc(func(pdfPath string, log *slog.Logger) (*types.Document, error) {
			calls++
			if pdfPath == bad {
				return nil, errors.New("unreadable")
			}
			return twoPageDoc(pdfPath), nil
		}),
		Images: &fakeImages{},
		Docx:   &fakeDocx{},
	}

	var out bytes.Buffer
	recs, result := ConvertBatch(st, []string{good, bad}, types.RunOptions{Format: types.DefaultFormat()}, io.Discard, &out)

	if calls != 2 {
		t.Errorf("extractor ran %d times, want 2", calls)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if result.Converted != 1 || result.Failed != 1 || result.Skipped != 0 {
		t.Errorf("summary = %+v", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if !strings.Contains(out.String(), "Batch summary: 1 converted, 0 skipped, 1 failed (total: 2)") {
		t.Errorf("missing batch summary in output:\n%s", out.String())
	}
}

// textFunc adapts a function to TextExtractor.
type textFunc func(pdfPath string, log *slog.Logger) (*types.Document, error)

func (f textFunc) Extract(pdfPath string, log *slog.Logger) (*types.Document, error) {
	return f(pdfPath, log)
}

func TestDocxPath(t *testing.T) {
	got := DocxPath(filepath.Join("in", "My.Report.pdf"))
	want := filepath.Join("in", "My.Report.docx")
	if got != want {
		t.Errorf("DocxPath = %q, want %q", got, want)
	}
}
