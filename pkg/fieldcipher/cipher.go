// Package fieldcipher protects a single sensitive field at rest and redacts it
// on output.
//
// The cipher is AES-CBC with a fixed, configured IV. That makes it
// deterministic: the same plaintext always yields the same ciphertext, which
// is what lets callers look records up by the encrypted value.
package fieldcipher

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	// DefaultKeySize is used when the configured key is not a valid AES size.
	DefaultKeySize = 32
	// IVSize is the AES block size.
	IVSize = aes.BlockSize
)

var (
	ErrMissingKey     = errors.New("encryption key is not configured")
	ErrMissingIV      = errors.New("encryption IV is not configured")
	ErrInvalidCipher  = errors.New("ciphertext is not a valid base64 block sequence")
	ErrInvalidPadding = errors.New("ciphertext padding is invalid")
)

var validAESKeyLengths = map[int]bool{16: true, 24: true, 32: true}

// Cipher encrypts and decrypts field values. It is immutable after New and
// safe for concurrent use.
type Cipher struct {
	block cipher.Block
	iv    []byte
}

// New builds a Cipher from textual key and IV material. A key whose length is
// not 16, 24 or 32 bytes is truncated or zero-padded to 32 bytes; the IV is
// truncated or zero-padded to 16 bytes.
func New(key, iv string) (*Cipher, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	if iv == "" {
		return nil, ErrMissingIV
	}

	keyBytes := []byte(key)
	if !validAESKeyLengths[len(keyBytes)] {
		keyBytes = resize(keyBytes, DefaultKeySize)
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("create aes cipher: %w", err)
	}

	return &Cipher{
		block: block,
		iv:    resize([]byte(iv), IVSize),
	}, nil
}

// Encrypt returns the base64 ciphertext of plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))

	cipher.NewCBCEncrypter(c.block, c.iv).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Trailing NUL bytes are stripped from the result.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCipher, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", ErrInvalidCipher
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv).CryptBlocks(out, raw)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(plain, "\x00")), nil
}

// resize truncates or zero-pads b to exactly size bytes.
func resize(b []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, b)
	return out
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append(make([]byte, 0, len(b)+n), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, ErrInvalidPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
