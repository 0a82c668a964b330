package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func decodePreview(t *testing.T, p *PreviewResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(p.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestPreview_Downscales(t *testing.T) {
	img := solidImage(100, 50, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	p, err := Preview(img, 40)
	require.NoError(t, err)

	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 20, p.Height)
	assert.Equal(t, "image/png", p.MimeType)

	decoded := decodePreview(t, p)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 20, decoded.Bounds().Dy())
}

func TestPreview_TallImage(t *testing.T) {
	img := solidImage(50, 100, color.NRGBA{A: 255})

	p, err := Preview(img, 40)
	require.NoError(t, err)

	assert.Equal(t, 20, p.Width)
	assert.Equal(t, 40, p.Height)
}

func TestPreview_SmallImageUnchanged(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})

	p, err := Preview(img, DefaultPreviewSize)
	require.NoError(t, err)

	assert.Equal(t, 10, p.Width)
	assert.Equal(t, 10, p.Height)
}

func TestPreviewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solidImage(64, 64, color.NRGBA{G: 255, A: 255})))
	require.NoError(t, f.Close())

	p, err := PreviewFile(path, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, p.Width)
	assert.Equal(t, 32, p.Height)
}

func TestPreviewFile_Missing(t *testing.T) {
	_, err := PreviewFile(filepath.Join(t.TempDir(), "nope.png"), 32)
	assert.Error(t, err)
}

func TestAverageColorHex_Solid(t *testing.T) {
	tests := []struct {
		name string
		c    color.NRGBA
		want string
	}{
		{"red", color.NRGBA{R: 255, A: 255}, "#ff0000"},
		{"green", color.NRGBA{G: 255, A: 255}, "#00ff00"},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, "#ffffff"},
		{"black", color.NRGBA{A: 255}, "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageColorHex(solidImage(20, 20, tt.c))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAverageColorHex_Mixed(t *testing.T) {
	// Top half white, bottom half black averages to mid gray.
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if y >= 5 {
			c = color.NRGBA{A: 255}
		}
		for x := 0; x < 10; x++ {
			img.Set(x, y, c)
		}
	}

	assert.Equal(t, "#808080", AverageColorHex(img))
}

func TestAverageColorHex_Empty(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	assert.Equal(t, "", AverageColorHex(img))
}
