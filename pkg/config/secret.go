package config

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/confkit/confkit/pkg/errors"
)

const (
	secretKeySize   = 32
	secretNonceSize = 24

	// minHexKeyLen is a data-quality floor for the hex-encoded key; shorter
	// keys are logged but decryption is still attempted.
	minHexKeyLen = 32
)

// GetSecret resolves an option and returns its decrypted value. Options
// named with a leading underscore decrypt through Get already; for plain
// names the resolved string is decrypted explicitly. An unavailable secret
// yields the empty string.
func (c *Config) GetSecret(name string, opts ...GetOption) string {
	o := c.getOptions(opts)

	val := c.Get(name, opts...)
	if !strings.HasPrefix(name, "_") {
		if s, ok := val.(string); ok && s != "" {
			val = c.unwrapSecret(name, s, o.section, o.token)
		}
	}

	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}

// unwrapSecret derives the key from the environment variable named by the
// token option and decrypts the stored value. Every failure degrades to nil
// so callers treat the secret as unavailable rather than crash.
func (c *Config) unwrapSecret(name, val, sectionName, tokenOption string) interface{} {
	hexKey := c.GetEnvValue(tokenOption, InSection(sectionName))
	switch {
	case hexKey == "":
		c.log.Error().Str("token", tokenOption).Str("option", name).
			Msg("Empty key for secret option")
	case len(hexKey) < minHexKeyLen:
		// Non-fatal data-quality warning; decryption is still attempted.
		c.log.Error().Int("length", len(hexKey)).Str("token", tokenOption).Str("option", name).
			Msg("Bad key length for secret option")
	}

	plain, err := DecryptValue(val, hexKey)
	if err != nil {
		c.log.Debug().Err(err).Str("option", name).Str("token", tokenOption).
			Msg("Failed decrypting secret option")
		return nil
	}
	return plain
}

// DecryptValue opens a base64-encoded secretbox ciphertext with a
// hex-encoded 32-byte key. The 24-byte nonce is expected as the ciphertext
// prefix.
func DecryptValue(msg, hexKey string) (string, error) {
	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDecrypt, "decoding hex key")
	}
	if len(keyBytes) != secretKeySize {
		return "", errors.Newf(errors.ErrDecrypt, "key must be %d bytes, got %d", secretKeySize, len(keyBytes))
	}

	raw, err := base64.StdEncoding.DecodeString(msg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrDecrypt, "decoding base64 ciphertext")
	}
	if len(raw) < secretNonceSize {
		return "", errors.Newf(errors.ErrDecrypt, "ciphertext shorter than %d-byte nonce", secretNonceSize)
	}

	var key [secretKeySize]byte
	copy(key[:], keyBytes)
	var nonce [secretNonceSize]byte
	copy(nonce[:], raw[:secretNonceSize])

	plain, ok := secretbox.Open(nil, raw[secretNonceSize:], &nonce, &key)
	if !ok {
		return "", errors.New(errors.ErrDecrypt, "ciphertext authentication failed")
	}
	return string(plain), nil
}

// EncryptValue is the sealing counterpart to DecryptValue: a random
// 24-byte nonce is prefixed to the box and the result is base64 encoded.
// It exists so tests and tooling can produce ciphertexts the resolver
// accepts.
func EncryptValue(msg, hexKey string) (string, error) {
	keyBytes, err := hex.DecodeString(hexKey)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrEncrypt, "decoding hex key")
	}
	if len(keyBytes) != secretKeySize {
		return "", errors.Newf(errors.ErrEncrypt, "key must be %d bytes, got %d", secretKeySize, len(keyBytes))
	}

	var key [secretKeySize]byte
	copy(key[:], keyBytes)
	var nonce [secretNonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrap(err, errors.ErrEncrypt, "generating nonce")
	}

	sealed := secretbox.Seal(nonce[:], []byte(msg), &nonce, &key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}
