package ocr

import "math"

const mmPerInch = 25.4

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PageDimensionsFromPixels converts pixel page dimensions at the given DPI
// into physical millimetres, rounded to one decimal.
func PageDimensionsFromPixels(widthPx, heightPx, dpi int) PageDimensions {
	return PageDimensions{
		WidthMM:  round1(float64(widthPx) / float64(dpi) * mmPerInch),
		HeightMM: round1(float64(heightPx) / float64(dpi) * mmPerInch),
	}
}

// ImageMetadataFromBoundingBox computes an image's width as a percentage of
// the page width from its bounding-box x coordinates, rounded to one decimal.
//
// Callers must filter out bounding boxes with missing coordinates before
// calling; this function does not check for absence.
func ImageMetadataFromBoundingBox(imageID string, topLeftX, bottomRightX, pageWidthPx int) ImageMetadata {
	widthPercent := float64(bottomRightX-topLeftX) / float64(pageWidthPx) * 100
	return ImageMetadata{
		ImageID:      imageID,
		WidthPercent: round1(widthPercent),
	}
}

// extractGeometry walks the OCR pages in order and recovers the document
// geometry: the physical page size from the first page that reports
// dimensions (later pages are ignored even if they differ; documents are
// assumed to use a single page size), and per-image sizing metadata for
// every image with a usable bounding box. Degenerate boxes
// (bottom_right_x < top_left_x) and images on pages without dimensions are
// skipped rather than treated as errors.
func extractGeometry(pages []apiPage) (*PageDimensions, []ImageMetadata) {
	var dims *PageDimensions
	images := make([]ImageMetadata, 0)

	for _, page := range pages {
		if page.Dimensions == nil {
			continue
		}
		if dims == nil && page.Dimensions.DPI > 0 {
			d := PageDimensionsFromPixels(page.Dimensions.Width, page.Dimensions.Height, page.Dimensions.DPI)
			dims = &d
		}
		if page.Dimensions.Width <= 0 {
			continue
		}
		for _, img := range page.Images {
			if img.TopLeftX == nil || img.BottomRightX == nil {
				continue
			}
			if *img.BottomRightX < *img.TopLeftX {
				continue
			}
			images = append(images, ImageMetadataFromBoundingBox(
				img.ID, *img.TopLeftX, *img.BottomRightX, page.Dimensions.Width))
		}
	}

	return dims, images
}
