package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// AESGCM implements Sealer using AES-256-GCM.
type AESGCM struct {
	keys KeyProvider
}

// NewAESGCM constructs an AES-GCM sealer.
func NewAESGCM(keys KeyProvider) *AESGCM {
	return &AESGCM{keys: keys}
}

// Ciphertext format (binary):
// [0..1]   uint16 version (currently 1)
// [2..13]  12-byte nonce
// [14..]   gcm.Seal output (ciphertext + tag)
const aesGCMVersion uint16 = 1

const (
	gcmNonceSize = 12
	aesKeyLen    = 32
	headerLen    = 2 + gcmNonceSize
)

var (
	// ErrNotConfigured indicates a missing key provider.
	ErrNotConfigured = errors.New("seal: sealer not configured")
	// ErrPlaintextEmpty indicates an empty plaintext input.
	ErrPlaintextEmpty = errors.New("seal: plaintext is empty")
	// ErrInvalidKeyLength indicates the key length is invalid.
	ErrInvalidKeyLength = errors.New("seal: invalid key length")
	// ErrCiphertextTooShort indicates a truncated ciphertext.
	ErrCiphertextTooShort = errors.New("seal: ciphertext too short")
	// ErrUnsupportedVersion indicates an unsupported ciphertext version.
	ErrUnsupportedVersion = errors.New("seal: unsupported ciphertext version")
	// ErrOpenFailed indicates the value could not be authenticated.
	ErrOpenFailed = errors.New("seal: open failed")
)

// Seal encrypts plaintext, binding the result to scope via AAD.
func (e *AESGCM) Seal(plaintext []byte, scope Scope) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, ErrPlaintextEmpty
	}

	gcm, err := e.aead(scope)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerLen, headerLen+len(plaintext)+gcm.Overhead())
	binary.BigEndian.PutUint16(out[0:2], aesGCMVersion)
	if _, err := io.ReadFull(rand.Reader, out[2:headerLen]); err != nil {
		return nil, fmt.Errorf("seal: nonce generation failed: %w", err)
	}

	return gcm.Seal(out, out[2:headerLen], plaintext, scopeAAD(scope)), nil
}

// Open decrypts ciphertext, requiring the same scope it was sealed with.
func (e *AESGCM) Open(ciphertext []byte, scope Scope) ([]byte, error) {
	if len(ciphertext) < headerLen+1 {
		return nil, ErrCiphertextTooShort
	}

	if v := binary.BigEndian.Uint16(ciphertext[0:2]); v != aesGCMVersion {
		return nil, fmt.Errorf("seal: version %d: %w", v, ErrUnsupportedVersion)
	}

	gcm, err := e.aead(scope)
	if err != nil {
		return nil, err
	}

	plain, err := gcm.Open(nil, ciphertext[2:headerLen], ciphertext[headerLen:], scopeAAD(scope))
	if err != nil {
		// wrong scope, wrong key and tampering all look the same to the caller
		return nil, ErrOpenFailed
	}

	return plain, nil
}

func (e *AESGCM) aead(scope Scope) (cipher.AEAD, error) {
	if e == nil || e.keys == nil {
		return nil, ErrNotConfigured
	}

	key, err := e.keys.Key(scope)
	if err != nil {
		return nil, fmt.Errorf("seal: key provider error: %w", err)
	}
	if len(key) != aesKeyLen {
		return nil, fmt.Errorf("seal: key length %d (want %d): %w", len(key), aesKeyLen, ErrInvalidKeyLength)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("seal: aes init failed: %w", err)
	}

	return cipher.NewGCMWithNonceSize(block, gcmNonceSize)
}

// scopeAAD hashes a canonical form of the scope so the AAD has a fixed length
// and no separator ambiguity.
func scopeAAD(s Scope) []byte {
	canonical := fmt.Sprintf("purpose=%s\nsubject=%s\n", s.Purpose, s.Subject)
	sum := sha256.Sum256([]byte(canonical))
	return sum[:]
}
