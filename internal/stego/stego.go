package stego

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"stegochat/internal/domain"
)

const (
	// CarrierWidth and CarrierHeight fix the carrier geometry. One payload
	// bit is hidden per pixel, so capacity is CarrierWidth*CarrierHeight bits.
	CarrierWidth  = 256
	CarrierHeight = 256

	capacityBits = CarrierWidth * CarrierHeight
	lengthBits   = 32

	// MaxPayloadBytes is the largest payload Embed accepts.
	MaxPayloadBytes = (capacityBits - lengthBits) / 8
)

// Embed hides payload in a fresh carrier image.
//
// The frame is a 32-bit big-endian byte count followed by the payload bits,
// most-significant bit first within each byte. Bit i lands in the
// least-significant bit of the blue channel of pixel i in raster order;
// pixels past the frame keep the background value. Payloads that do not fit
// report ErrCapacity and nothing is written.
func Embed(payload []byte) (*image.NRGBA, error) {
	need := lengthBits + len(payload)*8
	if need > capacityBits {
		return nil, fmt.Errorf("%d bits > %d: %w", need, capacityBits, domain.ErrCapacity)
	}

	img := newCarrier()
	n := uint32(len(payload))
	for i := 0; i < lengthBits; i++ {
		setBit(img, i, byte(n>>(31-i))&1)
	}
	for bi, b := range payload {
		for i := 0; i < 8; i++ {
			setBit(img, lengthBits+bi*8+i, (b>>(7-i))&1)
		}
	}
	return img, nil
}

// Extract recovers the payload hidden by Embed.
//
// It reads blue-channel LSBs in raster order, decodes the length prefix and
// then the payload bytes. A declared length overrunning the available bits,
// or a payload that is not valid UTF-8, reports ErrMalformedFrame. There is
// no checksum: corruption inside the frame silently yields wrong bytes.
func Extract(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total < lengthBits {
		return nil, fmt.Errorf("carrier holds %d bits: %w", total, domain.ErrMalformedFrame)
	}

	var n uint32
	for i := 0; i < lengthBits; i++ {
		n = n<<1 | uint32(getBit(img, i))
	}
	if int64(n) > int64(total-lengthBits)/8 {
		return nil, fmt.Errorf("declared %d bytes exceeds carrier: %w", n, domain.ErrMalformedFrame)
	}

	payload := make([]byte, n)
	for bi := range payload {
		var b byte
		for i := 0; i < 8; i++ {
			b = b<<1 | getBit(img, lengthBits+bi*8+i)
		}
		payload[bi] = b
	}
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("payload is not valid UTF-8: %w", domain.ErrMalformedFrame)
	}
	return payload, nil
}

// newCarrier paints a deterministic gradient so carriers look like synthetic
// art rather than flat noise.
func newCarrier() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, CarrierWidth, CarrierHeight))
	for y := 0; y < CarrierHeight; y++ {
		for x := 0; x < CarrierWidth; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x),
				G: uint8(y),
				B: uint8(x ^ y),
				A: 255,
			})
		}
	}
	return img
}

// setBit writes bit into the blue LSB of pixel idx (raster order).
func setBit(img *image.NRGBA, idx int, bit byte) {
	off := img.PixOffset(idx%CarrierWidth, idx/CarrierWidth)
	img.Pix[off+2] = img.Pix[off+2]&^1 | bit
}

// getBit reads the blue LSB of pixel idx (raster order) from any image type.
func getBit(img image.Image, idx int) byte {
	bounds := img.Bounds()
	x := bounds.Min.X + idx%bounds.Dx()
	y := bounds.Min.Y + idx/bounds.Dx()
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return c.B & 1
}
