package imageprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"fitted/internal/domain"
)

const (
	// MaxDimension bounds the longest side of any image sent to a backend.
	MaxDimension = 1920

	jpegQuality = 85
)

// Prepared is a normalized image ready to attach to a backend request.
type Prepared struct {
	Data   []byte
	Width  int
	Height int
}

// Normalize decodes raw image bytes, flattens them onto a white background
// (backends want plain 3-channel input), downscales preserving aspect ratio
// when the longest side exceeds MaxDimension and re-encodes as JPEG.
func Normalize(raw []byte) (Prepared, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Prepared{}, fmt.Errorf("%w: decode image: %v", domain.ErrImageFetch, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetW, targetH := fitWithin(width, height, MaxDimension)

	flat := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if targetW == width && targetH == height {
		draw.Draw(flat, flat.Bounds(), src, bounds.Min, draw.Over)
	} else {
		xdraw.CatmullRom.Scale(flat, flat.Bounds(), src, bounds, xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Prepared{}, fmt.Errorf("%w: encode jpeg: %v", domain.ErrImageFetch, err)
	}
	return Prepared{Data: buf.Bytes(), Width: targetW, Height: targetH}, nil
}

// Dimensions reports the pixel size of raw image bytes without a full decode.
func Dimensions(raw []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode image config: %v", domain.ErrImageFetch, err)
	}
	return cfg.Width, cfg.Height, nil
}

// fitWithin shrinks (w, h) proportionally so the longest side is at most max.
func fitWithin(w, h, max int) (int, int) {
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= max {
		return w, h
	}
	scale := float64(max) / float64(longest)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
