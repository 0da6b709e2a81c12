package mediaservice

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 82
)

// Probe holds what could be learned about an upload without trusting the
// client. Width and Height are nil when the payload is not a decodable image.
type Probe struct {
	Width  *int
	Height *int
}

// probeImage reads the dimensions from the image header. A payload that does
// not decode is still accepted as an opaque file.
func probeImage(data []byte) Probe {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Probe{}
	}

	return Probe{Width: &cfg.Width, Height: &cfg.Height}
}

// downscale re-encodes images wider than maxImageWidth as JPEG at a
// proportional size. Anything else passes through untouched.
func downscale(data []byte) ([]byte, Probe, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, Probe{}, nil
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxImageWidth {
		return data, Probe{Width: &w, Height: &h}, nil
	}

	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, Probe{}, err
	}

	newW := maxImageWidth
	return buf.Bytes(), Probe{Width: &newW, Height: &newH}, nil
}
