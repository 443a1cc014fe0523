// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package cipher implements the reversible keystream transform used to
// obfuscate records in published evaluation datasets.
//
// # Problem Statement
//
// Benchmark datasets are distributed with every text field XOR-ed against a
// keystream derived from a small per-record secret (the "canary" column).
// This keeps the plaintext out of web crawls and training corpora, but it is
// deliberately NOT a security boundary: anyone holding the CSV also holds
// every secret. This package reverses (and, for test fixtures, applies) that
// transform.
//
// # Algorithm
//
// The keystream for a record is the SHA-256 digest of the secret, repeated
// end to end and truncated to the ciphertext length:
//
//	key = digest × floor(L/32) ++ digest[:L mod 32]
//
// Ciphertext travels as standard base64 text. Decoding is base64 → XOR with
// the keystream → UTF-8 validation.
package cipher

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Stage identifies the decode step that failed.
type Stage string

const (
	// StageKey covers keystream derivation (e.g. an empty secret).
	StageKey Stage = "key"

	// StageBase64 covers base64 decoding of the ciphertext.
	StageBase64 Stage = "base64"

	// StageUTF8 covers plaintext validation after the XOR pass.
	StageUTF8 Stage = "utf8"
)

// ErrEmptySecret is returned when a record carries no per-record secret.
var ErrEmptySecret = errors.New("empty secret")

// ErrInvalidUTF8 is returned when the XOR result is not valid UTF-8 text,
// which almost always means the secret does not match the ciphertext.
var ErrInvalidUTF8 = errors.New("plaintext is not valid UTF-8")

// DecodeError reports a failed record decode together with the stage that
// rejected the input. Callers treat these as per-record failures: the record
// is skipped and counted, the run continues.
type DecodeError struct {
	Stage Stage
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DeriveKey expands secret into a keystream of exactly length bytes.
//
// The SHA-256 digest of the secret is concatenated with itself until the
// requested length is covered, then truncated. A given (secret, length) pair
// always yields the same keystream, and shorter keystreams are prefixes of
// longer ones.
func DeriveKey(secret string, length int) []byte {
	digest := sha256.Sum256([]byte(secret))
	key := make([]byte, 0, length+sha256.Size)
	for len(key) < length {
		key = append(key, digest[:]...)
	}
	return key[:length]
}

// Decrypt reverses the keystream transform for one encoded field.
//
// # Inputs
//
//   - ciphertextB64: base64 (standard alphabet) ciphertext as stored in the
//     dataset. An empty string decodes to an empty plaintext.
//   - secret: the record's per-record secret. Must be non-empty.
//
// # Outputs
//
//   - string: the recovered UTF-8 plaintext
//   - error: a *DecodeError naming the failing stage, or nil
//
// Decrypt is a pure function of its inputs.
func Decrypt(ciphertextB64, secret string) (string, error) {
	if secret == "" {
		return "", &DecodeError{Stage: StageKey, Err: ErrEmptySecret}
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", &DecodeError{Stage: StageBase64, Err: err}
	}

	key := DeriveKey(secret, len(raw))
	for i := range raw {
		raw[i] ^= key[i]
	}

	if !utf8.Valid(raw) {
		return "", &DecodeError{Stage: StageUTF8, Err: ErrInvalidUTF8}
	}
	return string(raw), nil
}

// Encrypt applies the forward transform, returning base64 ciphertext.
//
// The transform is symmetric, so Decrypt(Encrypt(p, s), s) == p for any
// plaintext p and non-empty secret s. Used to build test fixtures and to
// re-obfuscate locally prepared datasets.
func Encrypt(plaintext, secret string) string {
	raw := []byte(plaintext)
	key := DeriveKey(secret, len(raw))
	for i := range raw {
		raw[i] ^= key[i]
	}
	return base64.StdEncoding.EncodeToString(raw)
}
