// Package stego hides ciphertext in the pixels of a synthetic carrier image.
//
// The codec is a pure bit-serialisation transform: a 32-bit big-endian
// length prefix followed by the payload, one bit per pixel in the blue
// channel's least-significant bit, raster order, on a fixed 256×256 RGBA
// carrier. Capacity is 65536 bits; Embed refuses payloads that do not fit
// and Extract rejects frames whose declared length overruns the carrier.
//
// The carrier is purely a container. There is no attempt to resist
// steganalysis, and no checksum: bit corruption inside the frame produces
// wrong output rather than an error.
package stego
