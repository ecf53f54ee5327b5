// Package encoding provides the opaque-state codec used for sensitive
// component state and signed cookies.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
)

// Codec encodes state maps into URL-safe strings. Two modes:
//   - Signed: msgpack + HMAC signature, visible but tamper-proof
//   - Encrypted: AES-256-GCM, fully opaque
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// NewCodec creates a codec from the given key. Keys shorter than 32 bytes
// are stretched through SHA-256 so any secret works for AES-256.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode serializes a state map. Encrypted when sensitive, signed otherwise.
func (c *Codec) Encode(data map[string]any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(data)
	if err != nil {
		return "", err
	}
	if sensitive {
		return c.encrypt(packed)
	}
	return c.sign(packed), nil
}

// Decode reverses Encode, returning the state map.
func (c *Codec) Decode(encoded string, sensitive bool) (map[string]any, error) {
	var packed []byte
	var err error
	if sensitive {
		packed, err = c.decrypt(encoded)
	} else {
		packed, err = c.verify(encoded)
	}
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return nil, ErrInvalidFormat
	}
	return data, nil
}

// SignValue signs a single string value for storage in a cookie.
func (c *Codec) SignValue(value string) string {
	return c.sign([]byte(value))
}

// VerifyValue verifies a signed cookie value and returns the original string.
func (c *Codec) VerifyValue(signed string) (string, error) {
	data, err := c.verify(signed)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sign produces base64(data).base64(hmac[:16]).
func (c *Codec) sign(data []byte) string {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig
}

func (c *Codec) verify(encoded string) ([]byte, error) {
	payload, sigPart, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:16]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

func (c *Codec) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	plain, err := c.gcm.Open(nil, nonce, ciphertext[c.gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
