// Package ocr extracts structured markdown from PDF documents using the
// Mistral OCR API, inlines out-of-band tables and images into the page
// markdown, and recovers page and image geometry from the reported pixel
// coordinates.
package ocr

// Wire types for the Mistral OCR response. Bounding-box coordinates are
// pointers so that an absent coordinate is distinguishable from zero.

type apiResponse struct {
	Pages     []apiPage `json:"pages"`
	Model     string    `json:"model"`
	UsageInfo struct {
		PagesProcessed int  `json:"pages_processed"`
		DocSizeBytes   *int `json:"doc_size_bytes"`
	} `json:"usage_info"`
}

type apiPage struct {
	Index      int            `json:"index"`
	Markdown   string         `json:"markdown"`
	Tables     []apiTable     `json:"tables"`
	Images     []apiImage     `json:"images"`
	Dimensions *apiDimensions `json:"dimensions"`
}

type apiTable struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

type apiImage struct {
	ID           string `json:"id"`
	ImageBase64  string `json:"image_base64"`
	TopLeftX     *int   `json:"top_left_x"`
	TopLeftY     *int   `json:"top_left_y"`
	BottomRightX *int   `json:"bottom_right_x"`
	BottomRightY *int   `json:"bottom_right_y"`
}

type apiDimensions struct {
	DPI    int `json:"dpi"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Page is a single page of OCR output with tables and images inlined.
type Page struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

// PageDimensions is the physical page size recovered from pixel
// dimensions and DPI, in millimetres rounded to one decimal.
type PageDimensions struct {
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// ImageMetadata carries the sizing information for one OCR image.
// ImageID equals the markdown alt text of the inlined image verbatim;
// that identity is the join key the render stage uses for its CSS rules.
type ImageMetadata struct {
	ImageID      string  `json:"image_id"`
	WidthPercent float64 `json:"width_percent"`
}

// Document is the complete OCR result for one PDF.
// RawMarkdown is always the page markdowns combined by CombinePages,
// never stored independently of Pages.
type Document struct {
	Pages          []Page          `json:"pages"`
	RawMarkdown    string          `json:"raw_markdown"`
	Images         []ImageMetadata `json:"images"`
	PageDimensions *PageDimensions `json:"page_dimensions,omitempty"`
}
