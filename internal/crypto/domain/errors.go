package domain

import (
	"github.com/healthdesk/healthinfo/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrInvalidKeySize indicates the field-encryption key is not exactly
	// 32 bytes (256 bits). Raised once at process start, never per request.
	ErrInvalidKeySize = errors.New("encryption key must be exactly 32 bytes")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext or IV has been tampered with (authentication failure)
	//   - Input shorter than the fixed IV and tag segments
	//   - Non-hexadecimal input
	//
	// The specific cause is wrapped for logging but never disclosed to API
	// callers; read paths substitute DecryptionPlaceholder instead.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionFailed indicates a cipher failure while encrypting a
	// non-empty value. Distinct from the nil "field not set" result so
	// callers can abort the write instead of persisting nothing silently.
	ErrEncryptionFailed = errors.New("encryption failed")
)
