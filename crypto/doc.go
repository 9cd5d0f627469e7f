// Package crypto implements EN-1.0, the authenticated decryption stage of the
// decode pipeline: AES-256-GCM with a 96-bit nonce, a 128-bit tag, and empty
// associated data.
//
// Unsealer owns the run's key for its lifetime and zeroes it on Close. Key
// validation happens once, at construction: a malformed key is a fatal
// configuration error, not a per-block skip.
package crypto
