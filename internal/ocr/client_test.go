package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf-to-english/internal/types"
)

func TestEncodeFileToBase64(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.pdf")
	content := []byte("%PDF-1.4 test content")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	encoded, err := EncodeFileToBase64(path)
	if err != nil {
		t.Fatalf("EncodeFileToBase64 failed: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("result is not valid base64: %v", err)
	}
	if string(decoded) != string(content) {
		t.Error("decoded content does not match original")
	}
}

func TestEncodeFileToBase64_MissingFile(t *testing.T) {
	_, err := EncodeFileToBase64(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrFileNotFound {
		t.Errorf("expected code %s, got %s", types.ErrFileNotFound, appErr.Code)
	}
}

// fixtureResponse builds an OCR response with one table, one image with a
// bounding box, and page dimensions.
func fixtureResponse() apiResponse {
	return apiResponse{
		Model: "mistral-ocr-latest",
		Pages: []apiPage{
			{
				Index:    0,
				Markdown: "# Title\n\n[tbl-0.html](tbl-0.html)\n\n![img-0.jpeg](img-0.jpeg)",
				Tables: []apiTable{
					{ID: "tbl-0.html", Content: `<table><tr><th colspan="2">H</th></tr></table>`, Format: "html"},
				},
				Images: []apiImage{
					{
						ID:           "img-0.jpeg",
						ImageBase64:  "data:image/jpeg;base64,AAAA",
						TopLeftX:     intPtr(152),
						TopLeftY:     intPtr(100),
						BottomRightX: intPtr(276),
						BottomRightY: intPtr(200),
					},
				},
				Dimensions: &apiDimensions{DPI: 300, Width: 1654, Height: 2339},
			},
			{
				Index:      1,
				Markdown:   "Second page text.",
				Dimensions: &apiDimensions{DPI: 300, Width: 1654, Height: 2339},
			},
		},
	}
}

func TestClient_ExtractDocument(t *testing.T) {
	var gotRequest ocrRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocr" {
			t.Errorf("expected path /ocr, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(fixtureResponse())
	}))
	defer server.Close()

	tmpDir := t.TempDir()
	pdfPath := filepath.Join(tmpDir, "doc.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	client := NewClientWithConfig("test-key", server.URL, "", 0)
	doc, err := client.ExtractDocument(context.Background(), pdfPath)
	if err != nil {
		t.Fatalf("ExtractDocument failed: %v", err)
	}

	if gotRequest.TableFormat != "html" {
		t.Errorf("expected table_format html, got %q", gotRequest.TableFormat)
	}
	if !gotRequest.IncludeImageBase64 {
		t.Error("expected include_image_base64 true")
	}
	if !strings.HasPrefix(gotRequest.Document.DocumentURL, "data:application/pdf;base64,") {
		t.Error("expected document_url to be a base64 data URI")
	}

	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	if strings.Contains(doc.Pages[0].Markdown, "[tbl-0.html](tbl-0.html)") {
		t.Error("table placeholder should be inlined")
	}
	if !strings.Contains(doc.Pages[0].Markdown, `colspan="2"`) {
		t.Error("table HTML should survive inlining")
	}
	if !strings.Contains(doc.Pages[0].Markdown, "![img-0.jpeg](data:image/jpeg;base64,AAAA)") {
		t.Error("image placeholder should be inlined as a data URI")
	}

	if doc.RawMarkdown != CombinePages(doc.Pages) {
		t.Error("RawMarkdown must equal the combined pages")
	}
	if !strings.Contains(doc.RawMarkdown, "\n\n---\n\n") {
		t.Error("multi-page document should contain the page separator")
	}

	if doc.PageDimensions == nil {
		t.Fatal("expected page dimensions")
	}
	if !approxEqual(doc.PageDimensions.WidthMM, 140.0, 0.1) {
		t.Errorf("unexpected page width %v", doc.PageDimensions.WidthMM)
	}
	if len(doc.Images) != 1 {
		t.Fatalf("expected one image metadata entry, got %d", len(doc.Images))
	}
	if !approxEqual(doc.Images[0].WidthPercent, 7.5, 0.1) {
		t.Errorf("expected width percent about 7.5, got %v", doc.Images[0].WidthPercent)
	}
}

func TestClient_ProcessServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer server.Close()

	client := NewClientWithConfig("bad-key", server.URL, "", 0)
	_, err := client.Process(context.Background(), "aGVsbG8=")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrOCR {
		t.Errorf("expected code %s, got %s", types.ErrOCR, appErr.Code)
	}
}

func TestClient_ProcessMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClientWithConfig("test-key", server.URL, "", 0)
	_, err := client.Process(context.Background(), "aGVsbG8=")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *types.AppError, got %T", err)
	}
	if appErr.Code != types.ErrOCR {
		t.Errorf("expected code %s, got %s", types.ErrOCR, appErr.Code)
	}
}
