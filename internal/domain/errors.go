package domain

import "errors"

var (
	// ErrAuth rejects a connection whose credential is invalid or missing.
	ErrAuth = errors.New("authentication failed")

	// ErrTrustViolation marks an event between principals who are not
	// mutual friends. The router swallows it; it never reaches the sender.
	ErrTrustViolation = errors.New("principals are not mutual friends")

	// ErrCapacity means the payload does not fit the carrier image.
	ErrCapacity = errors.New("payload exceeds carrier capacity")

	// ErrMalformedFrame means extraction found a declared length exceeding
	// the available bits, or the decoded bytes are not valid text.
	ErrMalformedFrame = errors.New("malformed stego frame")

	// ErrKeyAgreement means a peer public key is malformed or unusable.
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrDecrypt is an AEAD authentication failure.
	ErrDecrypt = errors.New("decryption failed")
)
