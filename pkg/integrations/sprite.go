package integrations

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageData is a fetched image and its content type.
type ImageData struct {
	Content     []byte
	ContentType string
}

// SpriteRenderer draws images as terminal text using upper half blocks, two
// pixel rows per line.
type SpriteRenderer struct {
	maxWidth  int
	maxHeight int
}

// NewSpriteRenderer bounds the output to width columns and height lines.
func NewSpriteRenderer(width, height int) *SpriteRenderer {
	if width <= 0 {
		width = 32
	}
	if height <= 0 {
		height = 16
	}
	return &SpriteRenderer{maxWidth: width, maxHeight: height * 2}
}

func (r *SpriteRenderer) Render(input io.Reader) (string, error) {
	img, _, err := image.Decode(input)
	if err != nil {
		return "", fmt.Errorf("failed to decode sprite: %w", err)
	}

	bounds := img.Bounds()
	width, height := r.calculateDimensions(bounds.Dx(), bounds.Dy())
	if width == 0 || height == 0 {
		return "", fmt.Errorf("sprite has no pixels")
	}
	scaled := r.resize(img, width, height)

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			top := scaled.RGBAAt(x, y)
			var bottom color.RGBA
			if y+1 < height {
				bottom = scaled.RGBAAt(x, y+1)
			}
			b.WriteString(cell(top, bottom))
		}
	}
	return b.String(), nil
}

func (r *SpriteRenderer) RenderData(data []byte) (string, error) {
	return r.Render(bytes.NewReader(data))
}

// calculateDimensions fits width x height inside the renderer bounds keeping
// the aspect ratio. Images are never scaled up.
func (r *SpriteRenderer) calculateDimensions(width, height int) (int, int) {
	if width <= r.maxWidth && height <= r.maxHeight {
		return width, height
	}

	scale := float64(r.maxWidth) / float64(width)
	if hs := float64(r.maxHeight) / float64(height); hs < scale {
		scale = hs
	}

	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (r *SpriteRenderer) resize(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func opaque(c color.RGBA) bool {
	return c.A >= 128
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func cell(top, bottom color.RGBA) string {
	switch {
	case opaque(top) && opaque(bottom):
		return lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render("▀")
	case opaque(top):
		return lipgloss.NewStyle().Foreground(hex(top)).Render("▀")
	case opaque(bottom):
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render("▄")
	default:
		return " "
	}
}
