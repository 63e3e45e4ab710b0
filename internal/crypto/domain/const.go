package domain

// Wire format constants for encrypted field values.
//
// An encrypted field is stored as a single text column encoding
// hex(IV) || hex(tag) || hex(ciphertext), in that fixed order. The IV and
// authentication tag have fixed widths, so decoding splits the string at
// known offsets. Any value shorter than the IV and tag segments is malformed
// and must be rejected before a cipher operation is attempted.
const (
	// IVSize is the length in bytes of the per-field random IV.
	IVSize = 16

	// TagSize is the length in bytes of the GCM authentication tag.
	TagSize = 16

	// MinEncodedLength is the minimum length in hex characters of a valid
	// encrypted field value (IV and tag segments, empty ciphertext).
	MinEncodedLength = (IVSize + TagSize) * 2
)

// DecryptionPlaceholder is substituted for a field that failed to decrypt,
// so a record fetch can still return its intact siblings.
const DecryptionPlaceholder = "[DECRYPTION_FAILED]"
