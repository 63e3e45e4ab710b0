// Package service implements field-level authenticated encryption for
// sensitive client data.
package service

// FieldCodec encrypts and decrypts individual text fields for storage.
//
// The encrypt and decrypt error contracts are deliberately asymmetric:
// EncryptField reports failure through its error return so writers can abort,
// while a nil result with nil error means "field not set" and must be stored
// as NULL. Decrypt always returns an error on failure so readers can isolate
// a corrupt field and substitute a placeholder without losing its siblings.
type FieldCodec interface {
	// EncryptField encrypts a single field value. Empty input yields
	// (nil, nil) - the sentinel for an absent optional field. A cipher
	// failure yields (nil, ErrEncryptionFailed).
	EncryptField(plaintext string) (*string, error)

	// Decrypt decodes and decrypts a stored field value. Every failure wraps
	// ErrDecryptionFailed; a successful call always returns the original
	// plaintext, never a partial or best-guess value.
	Decrypt(encoded string) (string, error)
}
