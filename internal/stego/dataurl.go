package stego

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	"stegochat/internal/domain"
)

const dataURLPrefix = "data:image/png;base64,"

// EncodeDataURL serialises a carrier as the PNG data URL carried in
// CipherImage events. PNG is lossless, so hidden LSBs survive.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeDataURL parses a PNG data URL back into an image.
func DecodeDataURL(s string) (image.Image, error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return nil, fmt.Errorf("not a PNG data URL: %w", domain.ErrMalformedFrame)
	}
	raw, err := base64.StdEncoding.DecodeString(s[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", domain.ErrMalformedFrame)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode carrier PNG: %w", domain.ErrMalformedFrame)
	}
	return img, nil
}
