package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ledongthucpdf "github.com/ledongthuc/pdf"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/types"
)

const (
	// DefaultBaseURL is the default Mistral API base URL
	DefaultBaseURL = "https://api.mistral.ai/v1"
	// DefaultModel is the default OCR model
	DefaultModel = "mistral-ocr-latest"
	// DefaultTimeout is the HTTP client timeout for OCR calls; OCR of a
	// long document can take minutes
	DefaultTimeout = 300 * time.Second
)

// Client calls the Mistral OCR endpoint and assembles Documents from the
// responses.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates an OCR client with the default base URL and model.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(apiKey, "", "", 0)
}

// NewClientWithConfig creates an OCR client with full configuration.
// Empty values fall back to defaults.
func NewClientWithConfig(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// EncodeFileToBase64 reads a file and returns its standard base64 encoding
// for upload as a data URI.
func EncodeFileToBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", types.NewAppError(types.ErrFileNotFound, "file not found: "+path, err)
		}
		return "", types.NewAppError(types.ErrInvalidInput, "failed to read file: "+path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// InputPageCount opens the input PDF and returns its page count.
// Used for logging and to fail early on files that are not PDFs.
func InputPageCount(path string) (int, error) {
	f, r, err := ledongthucpdf.Open(path)
	if err != nil {
		return 0, types.NewAppError(types.ErrInvalidInput, "failed to open PDF", err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

// ocrRequest is the request body for the OCR endpoint.
type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	TableFormat        string      `json:"table_format"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// Process submits a base64-encoded PDF to the OCR endpoint and returns the
// decoded response. Tables are requested as HTML and image bytes are
// included inline.
func (c *Client) Process(ctx context.Context, base64PDF string) (*apiResponse, error) {
	reqBody := ocrRequest{
		Model: c.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: "data:application/pdf;base64," + base64PDF,
		},
		TableFormat:        "html",
		IncludeImageBase64: true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		logger.Error("failed to marshal OCR request", err)
		return nil, types.NewAppError(types.ErrOCR, "failed to marshal OCR request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ocr", bytes.NewBuffer(jsonBody))
	if err != nil {
		logger.Error("failed to create OCR request", err)
		return nil, types.NewAppError(types.ErrOCR, "failed to create OCR request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("OCR request failed", err)
		return nil, types.NewAppError(types.ErrOCR, "OCR request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read OCR response", err)
		return nil, types.NewAppError(types.ErrOCR, "failed to read OCR response", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("OCR API returned error status", nil, logger.Int("statusCode", resp.StatusCode))
		return nil, types.NewAppErrorWithDetails(
			types.ErrOCR,
			fmt.Sprintf("OCR API returned status %d", resp.StatusCode),
			truncateBody(body),
			nil,
		)
	}

	var ocrResp apiResponse
	if err := json.Unmarshal(body, &ocrResp); err != nil {
		logger.Error("failed to parse OCR response", err)
		return nil, types.NewAppError(types.ErrOCR, "failed to parse OCR response", err)
	}

	return &ocrResp, nil
}

// ExtractDocument runs the full OCR stage for one PDF: encode, submit,
// inline tables and images into each page, combine the pages into one
// markdown document, and extract page/image geometry.
func (c *Client) ExtractDocument(ctx context.Context, pdfPath string) (*Document, error) {
	if pageCount, err := InputPageCount(pdfPath); err == nil {
		logger.Info("input PDF opened", logger.String("path", pdfPath), logger.Int("pages", pageCount))
	} else {
		// Not fatal: the OCR service does its own parsing. Encode below
		// still reports missing files.
		logger.Warn("could not read input PDF page count", logger.Err(err))
	}

	base64PDF, err := EncodeFileToBase64(pdfPath)
	if err != nil {
		return nil, err
	}

	ocrResp, err := c.Process(ctx, base64PDF)
	if err != nil {
		return nil, err
	}

	pages := make([]Page, 0, len(ocrResp.Pages))
	for _, apiPg := range ocrResp.Pages {
		markdown := apiPg.Markdown
		if len(apiPg.Tables) > 0 {
			markdown = InlineTables(markdown, apiPg.Tables)
		}
		if len(apiPg.Images) > 0 {
			markdown = InlineImages(markdown, apiPg.Images)
		}
		pages = append(pages, Page{Index: apiPg.Index, Markdown: markdown})
	}

	dims, images := extractGeometry(ocrResp.Pages)

	doc := &Document{
		Pages:          pages,
		RawMarkdown:    CombinePages(pages),
		Images:         images,
		PageDimensions: dims,
	}

	logger.Info("document extracted",
		logger.Int("pages", len(doc.Pages)),
		logger.Int("images", len(doc.Images)),
		logger.Bool("hasDimensions", doc.PageDimensions != nil))

	return doc, nil
}

// truncateBody shortens an error response body for error details.
func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
