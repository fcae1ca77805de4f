package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-to-english/internal/types"
)

func TestNewRenderer_SplitsCommandLine(t *testing.T) {
	cases := []struct {
		name     string
		cmdLine  string
		wantCmd  string
		wantArgs int
	}{
		{"bare command", "weasyprint", "weasyprint", 0},
		{"command with flags", "wkhtmltopdf -q --print-media-type", "wkhtmltopdf", 2},
		{"empty falls back", "", DefaultRendererCmd, 0},
		{"whitespace only", "   ", DefaultRendererCmd, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRenderer(tc.cmdLine)
			if r.cmd != tc.wantCmd {
				t.Errorf("cmd = %q, want %q", r.cmd, tc.wantCmd)
			}
			if len(r.args) != tc.wantArgs {
				t.Errorf("args = %v, want %d leading args", r.args, tc.wantArgs)
			}
		})
	}
}

func TestRenderPDF_MissingCommandLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "out.pdf")

	r := NewRenderer("definitely-not-a-real-renderer-binary")
	err := r.RenderPDF(context.Background(), "# Doc", nil, nil, outputPath)
	if err == nil {
		t.Fatal("expected error for missing renderer command")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrRender {
		t.Errorf("expected code %s, got %s", types.ErrRender, appErr.Code)
	}

	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Error("no file may exist at the output path after a failure")
	}
	assertNoTempFiles(t, dir)
}

func TestRenderPDF_InvalidOutputFailsValidation(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "out.pdf")

	// A stand-in renderer that copies stdin to the output path, producing
	// a file that is not a PDF.
	script := filepath.Join(dir, "fake-renderer.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat > \"$2\"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake renderer: %v", err)
	}

	r := NewRenderer(script)
	err := r.RenderPDF(context.Background(), "# Doc", nil, nil, outputPath)
	if err == nil {
		t.Fatal("expected validation error for non-PDF output")
	}

	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrRender {
		t.Errorf("expected code %s, got %s", types.ErrRender, appErr.Code)
	}

	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Error("invalid output must not be moved to the output path")
	}
	assertNoTempFiles(t, dir)
}

func TestRenderPDF_RendererReceivesWrappedHTML(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "out.pdf")
	captured := filepath.Join(dir, "captured.html")

	// Capture stdin, then exit nonzero so the pipeline stops before
	// validation. The capture file shows what the renderer was fed.
	script := filepath.Join(dir, "capture.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat > "+captured+"\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("failed to write capture script: %v", err)
	}

	r := NewRenderer(script)
	if err := r.RenderPDF(context.Background(), "# Title", nil, nil, outputPath); err == nil {
		t.Fatal("expected error from failing renderer")
	}

	html, err := os.ReadFile(captured)
	if err != nil {
		t.Fatalf("renderer never received input: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<h1>Title</h1>", "@page"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("renderer input missing %q", want)
		}
	}
	assertNoTempFiles(t, dir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".render-*.pdf"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
