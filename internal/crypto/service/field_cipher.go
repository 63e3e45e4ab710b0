package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/healthdesk/healthinfo/internal/crypto/domain"
	apperrors "github.com/healthdesk/healthinfo/internal/errors"
)

// AESFieldCipher implements FieldCodec using AES-256-GCM.
//
// Each call to EncryptField generates a fresh 16-byte random IV. Nonce reuse
// under the same key breaks both confidentiality and integrity of GCM, so the
// IV is never derived from the plaintext or a counter.
//
// Wire format: hex(IV) || hex(tag) || hex(ciphertext). The 16-byte IV matches
// the storage format of existing encrypted rows, hence GCM with a non-default
// nonce size.
//
// Thread safety: the cipher is stateless after construction and safe for
// concurrent use; the key is read-only for the life of the process.
type AESFieldCipher struct {
	aead cipher.AEAD
}

// NewAESFieldCipher creates a FieldCodec from a 32-byte key.
// Callers should treat an error here as fatal at process start.
func NewAESFieldCipher(key []byte) (*AESFieldCipher, error) {
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESFieldCipher{aead: aead}, nil
}

// EncryptField encrypts a single field value for storage.
//
// Empty input returns (nil, nil): the field is absent and must be persisted
// as NULL, never as an encrypted empty string. Cipher failures return
// ErrEncryptionFailed so writers can distinguish "nothing to store" from
// "storage must be aborted".
func (a *AESFieldCipher) EncryptField(plaintext string) (*string, error) {
	if plaintext == "" {
		return nil, nil
	}

	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	// Seal appends the authentication tag to the ciphertext; the wire format
	// wants it between IV and ciphertext, so split it back out.
	sealed := a.aead.Seal(nil, iv, []byte(plaintext), nil)
	tagOffset := len(sealed) - cryptoDomain.TagSize
	ciphertext, tag := sealed[:tagOffset], sealed[tagOffset:]

	encoded := hex.EncodeToString(iv) + hex.EncodeToString(tag) + hex.EncodeToString(ciphertext)
	return &encoded, nil
}

// Decrypt decodes and decrypts a stored field value.
//
// The minimum-length check runs before any parsing so malformed input never
// reaches the cipher. A single flipped bit anywhere in the IV, tag, or
// ciphertext fails authentication and yields ErrDecryptionFailed.
func (a *AESFieldCipher) Decrypt(encoded string) (string, error) {
	if len(encoded) < cryptoDomain.MinEncodedLength {
		return "", apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "input is too short")
	}

	ivHex := encoded[:cryptoDomain.IVSize*2]
	tagHex := encoded[cryptoDomain.IVSize*2 : cryptoDomain.MinEncodedLength]
	ciphertextHex := encoded[cryptoDomain.MinEncodedLength:]

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "invalid IV encoding")
	}

	tag, err := hex.DecodeString(tagHex)
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "invalid tag encoding")
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "invalid ciphertext encoding")
	}

	plaintext, err := a.aead.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrDecryptionFailed, "authentication failed")
	}

	return string(plaintext), nil
}
