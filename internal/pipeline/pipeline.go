// Package pipeline orchestrates the three stages that turn a PDF in any
// language into an English PDF: OCR extraction, translation, rendering.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/ocr"
	"pdf-to-english/internal/types"
)

// DocumentExtractor produces a structured document from a PDF file.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, pdfPath string) (*ocr.Document, error)
}

// Translator converts markdown to the target language.
type Translator interface {
	Translate(ctx context.Context, markdown string) (string, error)
}

// PDFRenderer writes a validated PDF from translated markdown.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, markdown string, images []ocr.ImageMetadata, dims *ocr.PageDimensions, outputPath string) error
}

// StatusCallback receives stage transitions and progress messages.
type StatusCallback func(status types.Status)

// Pipeline runs one document through extraction, translation, and
// rendering. A Pipeline is single-use per Run call but safe to reuse
// sequentially; the stage field only feeds status reporting.
type Pipeline struct {
	extractor DocumentExtractor
	translate Translator
	renderer  PDFRenderer
	outputDir string
	onStatus  StatusCallback
}

// New assembles a pipeline from its three stage implementations. The
// callback may be nil.
func New(extractor DocumentExtractor, translator Translator, renderer PDFRenderer, outputDir string, onStatus StatusCallback) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		translate: translator,
		renderer:  renderer,
		outputDir: outputDir,
		onStatus:  onStatus,
	}
}

// report emits a status update if a callback is registered.
func (p *Pipeline) report(stage types.Stage, message string) {
	if p.onStatus != nil {
		p.onStatus(types.Status{Stage: stage, Message: message})
	}
}

// reportError emits an error status.
func (p *Pipeline) reportError(err error) {
	if p.onStatus != nil {
		p.onStatus(types.Status{Stage: types.StageError, Message: "pipeline failed", Error: err.Error()})
	}
}

// OutputPath returns where the translated PDF for inputPath will be
// written: "<stem>_english.pdf" inside the configured output directory.
func (p *Pipeline) OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(p.outputDir, stem+"_english.pdf")
}

// Run executes the full pipeline on inputPath and returns the path of
// the generated PDF. Each stage failure is wrapped with the stage that
// produced it; no partial output file is left on failure.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		wrapped := types.NewAppError(types.ErrFileNotFound, fmt.Sprintf("input file not found: %s", inputPath), err)
		p.reportError(wrapped)
		return "", wrapped
	}

	logger.Info("pipeline started", logger.String("input", inputPath))

	p.report(types.StageOCR, "extracting document structure")
	doc, err := p.extractor.ExtractDocument(ctx, inputPath)
	if err != nil {
		wrapped := stageError(types.ErrOCR, "ocr stage failed", err)
		p.reportError(wrapped)
		return "", wrapped
	}

	p.report(types.StageTranslate, "translating document")
	translated, err := p.translate.Translate(ctx, doc.RawMarkdown)
	if err != nil {
		wrapped := stageError(types.ErrTranslation, "translation stage failed", err)
		p.reportError(wrapped)
		return "", wrapped
	}

	outputPath := p.OutputPath(inputPath)
	p.report(types.StageRender, "rendering PDF")
	if err := p.renderer.RenderPDF(ctx, translated, doc.Images, doc.PageDimensions, outputPath); err != nil {
		wrapped := stageError(types.ErrRender, "render stage failed", err)
		p.reportError(wrapped)
		return "", wrapped
	}

	p.report(types.StageComplete, "translated PDF written to "+outputPath)
	logger.Info("pipeline complete", logger.String("output", outputPath))
	return outputPath, nil
}

// stageError keeps an existing AppError as-is so its code survives, and
// wraps anything else under the stage's code.
func stageError(code types.ErrorCode, message string, err error) error {
	if _, ok := err.(*types.AppError); ok {
		return err
	}
	return types.NewAppError(code, message, err)
}
