package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// DefaultPreviewSize is the bounding box, in pixels, used for listing
// previews. Large enough to judge the result, small enough to keep
// responses compact.
const DefaultPreviewSize = 512

// PreviewResult contains a downscaled, base64-encoded PNG rendition of
// an image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview downscales img so that neither dimension exceeds maxDim,
// preserving aspect ratio, and encodes it as base64 PNG. Images already
// within the bounding box are encoded as-is.
func Preview(img image.Image, maxDim int) (*PreviewResult, error) {
	if maxDim <= 0 {
		maxDim = DefaultPreviewSize
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxDim || h > maxDim {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		img = transform.Resize(img, w, h, transform.Linear)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// PreviewFile loads the image at path and returns its preview.
func PreviewFile(path string, maxDim int) (*PreviewResult, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return Preview(img, maxDim)
}
