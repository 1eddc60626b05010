package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const pngDataURIPrefix = "data:image/png;base64,"

// EncodeDataURI serializes an image as a base64 PNG data URI for embedding
// in the project document.
func EncodeDataURI(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("encode data URI: nil image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode data URI: %w", err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURI parses a base64 image data URI. Any format with a
// registered decoder is accepted, not just PNG.
func DecodeDataURI(src string) (image.Image, error) {
	if !strings.HasPrefix(src, "data:") {
		return nil, fmt.Errorf("decode data URI: not a data URI")
	}

	idx := strings.Index(src, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("decode data URI: missing base64 payload")
	}

	raw, err := base64.StdEncoding.DecodeString(src[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	return img, nil
}
