// Package visual builds a perceptual-fingerprint index of known-brand
// screenshots and matches probe images against it by Hamming distance.
package visual

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

// ErrDecode indicates the probe bytes could not be decoded as an image.
// Callers treat it as "no match", never as a fault.
var ErrDecode = errors.New("image decode failed")

// Normalize converts an image to the canonical RGBA colour model and scales
// it to a size×size square. Forcing the square removes aspect-ratio bias so
// that hashes of stored references and probes are comparable.
func Normalize(img image.Image, size uint) image.Image {
	scaled := resize.Resize(size, size, img, resize.Bicubic)
	bounds := scaled.Bounds()
	canonical := image.NewRGBA(bounds)
	draw.Draw(canonical, bounds, scaled, bounds.Min, draw.Src)
	return canonical
}

// HashImage normalizes img and computes its 64-bit perceptual hash.
func HashImage(img image.Image, size uint) (*goimagehash.ImageHash, error) {
	hash, err := goimagehash.PerceptionHash(Normalize(img, size))
	if err != nil {
		return nil, fmt.Errorf("perceptual hash: %w", err)
	}
	return hash, nil
}

// DecodeImage decodes encoded image bytes (PNG, JPEG or GIF).
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}
