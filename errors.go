package salsa

import "errors"

var (
	// ErrInvalidKeySize is returned when the provided key is not 16 or 32 bytes.
	ErrInvalidKeySize = errors.New("salsa: invalid key size, must be 16 or 32 bytes")

	// ErrInvalidNonceSize is returned when the provided nonce is not 8 bytes
	// (base variant) or 24 bytes (extended-nonce variant).
	ErrInvalidNonceSize = errors.New("salsa: invalid nonce size, must be 8 or 24 bytes")

	// ErrInvalidRounds is returned when the requested round count is not 8, 12, or 20.
	ErrInvalidRounds = errors.New("salsa: invalid round count, must be 8, 12, or 20")
)
