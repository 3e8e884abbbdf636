package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"
)

// ErrInvalidPayload is returned for payloads that are not a decodable image data URI.
var ErrInvalidPayload = errors.New("signature: invalid payload")

const pngDataURIPrefix = "data:image/png;base64,"

// Image is a decoded signature payload ready for embedding.
type Image struct {
	Format string // "PNG" or "JPG"
	Data   []byte
	Width  int
	Height int
}

// EncodePNG serialises img as a PNG data URI.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("signature: encode png: %w", err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodePayload parses a base64 image data URI. PNG and JPEG are accepted.
func DecodePayload(payload string) (*Image, error) {
	if payload == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URI", ErrInvalidPayload)
	}
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	mime, params, _ := strings.Cut(meta, ";")
	if !strings.Contains(params, "base64") {
		return nil, fmt.Errorf("%w: not base64 encoded", ErrInvalidPayload)
	}

	var format string
	switch strings.ToLower(mime) {
	case "image/png":
		format = "PNG"
	case "image/jpeg", "image/jpg":
		format = "JPG"
	default:
		return nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidPayload, mime)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var cfg image.Config
	if format == "PNG" {
		cfg, err = png.DecodeConfig(bytes.NewReader(data))
	} else {
		cfg, err = jpeg.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return &Image{Format: format, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// Decode returns the pixels of img.
func (img *Image) Decode() (image.Image, error) {
	var (
		m   image.Image
		err error
	)
	if img.Format == "PNG" {
		m, err = png.Decode(bytes.NewReader(img.Data))
	} else {
		m, err = jpeg.Decode(bytes.NewReader(img.Data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return m, nil
}

// Embeddable decodes img completely and re-encodes it as an 8-bit,
// non-interlaced RGBA PNG, the one layout every PDF writer accepts.
func (img *Image) Embeddable() (*Image, error) {
	m, err := img.Decode()
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidPayload)
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("signature: encode png: %w", err)
	}
	return &Image{Format: "PNG", Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}
