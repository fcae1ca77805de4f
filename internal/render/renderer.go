package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/ocr"
	"pdf-to-english/internal/types"
)

// DefaultRendererCmd is the HTML-to-PDF converter invoked when none is
// configured. WeasyPrint reads HTML from stdin when the input argument
// is "-".
const DefaultRendererCmd = "weasyprint"

// Renderer drives an external HTML-to-PDF converter. The command is
// configurable so wkhtmltopdf or a wrapper script can stand in, as long
// as it accepts HTML on stdin and an output path argument.
type Renderer struct {
	cmd  string
	args []string
}

// NewRenderer creates a renderer around the given command line. The
// string is split on whitespace: the first field is the executable, the
// rest are leading arguments. Empty falls back to DefaultRendererCmd.
func NewRenderer(cmdLine string) *Renderer {
	fields := strings.Fields(cmdLine)
	if len(fields) == 0 {
		fields = []string{DefaultRendererCmd}
	}
	return &Renderer{cmd: fields[0], args: fields[1:]}
}

// RenderPDF converts translated markdown into a PDF at outputPath. The
// document is converted to HTML, wrapped with synthesized styles, piped
// to the external renderer, and validated before it is moved into place.
// On any fault the temp file is removed and outputPath is left untouched,
// so a file at outputPath is always a complete, validated PDF.
func (r *Renderer) RenderPDF(ctx context.Context, markdown string, images []ocr.ImageMetadata, dims *ocr.PageDimensions, outputPath string) error {
	body, err := MarkdownToHTML(markdown)
	if err != nil {
		return err
	}
	html := WrapWithStyles(body, images, dims)

	outDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return types.NewAppError(types.ErrRender, "failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(outDir, ".render-*.pdf")
	if err != nil {
		return types.NewAppError(types.ErrRender, "failed to create temp file", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := r.runRenderer(ctx, html, tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := validateOutput(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return types.NewAppError(types.ErrRender, "failed to move rendered PDF into place", err)
	}

	logger.Info("PDF rendered",
		logger.String("output", outputPath),
		logger.Int("htmlLength", len(html)))
	return nil
}

// runRenderer feeds HTML to the external command on stdin and has it
// write the PDF to outPath.
func (r *Renderer) runRenderer(ctx context.Context, html, outPath string) error {
	args := append(append([]string{}, r.args...), "-", outPath)
	cmd := exec.CommandContext(ctx, r.cmd, args...)
	cmd.Stdin = strings.NewReader(html)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Info("running renderer",
		logger.String("command", r.cmd),
		logger.String("output", outPath))

	if err := cmd.Run(); err != nil {
		logger.Error("renderer command failed", err,
			logger.String("stderr", truncate(stderr.String(), 2000)))
		return types.NewAppErrorWithDetails(
			types.ErrRender,
			fmt.Sprintf("renderer command %q failed", r.cmd),
			truncate(stderr.String(), 2000),
			err,
		)
	}
	return nil
}

// validateOutput checks that the renderer produced a structurally valid
// PDF and logs its page count.
func validateOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return types.NewAppError(types.ErrRender, "renderer produced no output", err)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		return types.NewAppError(types.ErrRender, "rendered PDF failed validation", err)
	}

	pages, err := api.PageCountFile(path)
	if err != nil {
		return types.NewAppError(types.ErrRender, "failed to read rendered PDF page count", err)
	}
	logger.Info("rendered PDF validated", logger.Int("pages", pages))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
