package app

import (
	"fmt"

	cryptoService "github.com/healthdesk/healthinfo/internal/crypto/service"
)

// FieldCodec returns the field-level encryption codec shared by every
// use case that stores sensitive client data. Key decoding happens here so a
// missing or malformed key fails the process at startup, not on first write.
func (c *Container) FieldCodec() (cryptoService.FieldCodec, error) {
	var err error
	c.fieldCodecInit.Do(func() {
		c.fieldCodec, err = c.initFieldCodec()
		if err != nil {
			c.initErrors["fieldCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCodec"]; exists {
		return nil, storedErr
	}
	return c.fieldCodec, nil
}

// initFieldCodec decodes the configured key and creates the AES field cipher.
func (c *Container) initFieldCodec() (cryptoService.FieldCodec, error) {
	key, err := c.config.DecodeEncryptionKey()
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}

	cipher, err := cryptoService.NewAESFieldCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}

	return cipher, nil
}
