package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/shootbywire/sbwdecode/errs"
	"github.com/shootbywire/sbwdecode/format"
	"github.com/shootbywire/sbwdecode/frame"
	"github.com/shootbywire/sbwdecode/outcome"
)

// KeySize is the required length, in bytes, of an EN-1.0 key.
const KeySize = 32

// DefaultKeyFailureThreshold is the number of consecutive tag-mismatch
// failures, before any block has succeeded, that trips the fatal
// key_likely_wrong abort (spec §4.2 edge-case policy).
const DefaultKeyFailureThreshold = 16

// ExpectedNonceSize is the only nonce_size EN-1.0 accepts.
const ExpectedNonceSize = 12

// Unsealer authenticates and decrypts block sealed payloads using
// AES-256-GCM with empty associated data. It owns the configured key for the
// duration of a run and is not safe for concurrent use.
type Unsealer struct {
	gcm       cipher.AEAD
	key       []byte
	threshold int
	failures  int
	succeeded bool
}

// NewUnsealer validates key and constructs an Unsealer.
//
// key must be exactly KeySize bytes and must not be all-zero or a
// constant-byte pattern; either condition is a fatal configuration error
// raised here, at construction, rather than deferred to the first block.
func NewUnsealer(key []byte, keyFailureThreshold int) (*Unsealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("crypto: %w: got %d bytes", errs.ErrKeyLengthInvalid, len(key))
	}

	if isWeakKey(key) {
		return nil, fmt.Errorf("crypto: %w", errs.ErrKeyWeak)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: construct AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: construct GCM: %w", err)
	}

	if keyFailureThreshold <= 0 {
		keyFailureThreshold = DefaultKeyFailureThreshold
	}

	owned := make([]byte, len(key))
	copy(owned, key)

	return &Unsealer{gcm: gcm, key: owned, threshold: keyFailureThreshold}, nil
}

// isWeakKey reports whether key is all-zero or every byte repeats the same value.
func isWeakKey(key []byte) bool {
	if len(key) == 0 {
		return true
	}

	first := key[0]
	for _, b := range key {
		if b != first {
			return false
		}
	}

	return true
}

// Unseal authenticates and decrypts a single frame's sealed payload.
//
// On success it returns exactly frame.Header.CompressedSize plaintext bytes.
// On authentication or nonce-length failure it returns an outcome.Skip. The
// caller must record that skip and then consult ShouldAbort: once the
// consecutive-failure count reaches the configured threshold without any
// prior success, the run must abort with key_likely_wrong rather than
// continue attempting further blocks under what is almost certainly the
// wrong key (spec §4.2).
func (u *Unsealer) Unseal(f frame.Frame) ([]byte, error) {
	return u.UnsealInto(f, nil)
}

// UnsealInto behaves like Unseal but appends the decrypted plaintext to dst
// (per crypto/cipher.AEAD.Open's dst convention) instead of always
// allocating a fresh slice. Callers that process many blocks can pass a
// pooled buffer's backing array, reset to zero length, to amortize
// allocation across the run (teacher's internal/pool.ByteBuffer discipline).
func (u *Unsealer) UnsealInto(f frame.Frame, dst []byte) ([]byte, error) {
	if f.Header.NonceSize != ExpectedNonceSize {
		return nil, outcome.NewSkipErr(format.StageCrypto, "nonce_length_invalid", errs.ErrNonceLengthInvalid)
	}

	nonce := f.Sealed[:f.Header.NonceSize]
	ciphertextAndTag := f.Sealed[f.Header.NonceSize:]

	plaintext, err := u.gcm.Open(dst, nonce, ciphertextAndTag, nil)
	if err != nil {
		u.failures++
		return nil, outcome.NewSkipErr(format.StageCrypto, "wrong_key_or_tampered", errs.ErrAuthenticationFailed)
	}

	u.succeeded = true

	return plaintext, nil
}

// ShouldAbort reports whether the run must abort with key_likely_wrong: the
// consecutive tag-failure count has reached the configured threshold and no
// block has yet succeeded under this key.
func (u *Unsealer) ShouldAbort() bool {
	return !u.succeeded && u.failures >= u.threshold
}

// AbortError is the fatal error to surface when ShouldAbort returns true.
func (u *Unsealer) AbortError() error {
	return fmt.Errorf("crypto: %w", errs.ErrKeyLikelyWrong)
}

// Close zeroes the owned key. The Unsealer must not be used afterward.
func (u *Unsealer) Close() {
	for i := range u.key {
		u.key[i] = 0
	}
}
