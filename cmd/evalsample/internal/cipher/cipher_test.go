// Copyright (C) 2026 Strata Labs (oss@stratalabs.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package cipher

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKeyLength(t *testing.T) {
	for _, length := range []int{0, 1, 31, 32, 33, 64, 100, 1000} {
		key := DeriveKey("canary-secret", length)
		assert.Len(t, key, length, "length %d", length)
	}
}

func TestDeriveKeyRepeatsDigest(t *testing.T) {
	key := DeriveKey("s3cret", 96)

	// The keystream is the digest tiled end to end.
	digest := sha256.Sum256([]byte("s3cret"))
	assert.Equal(t, digest[:], key[:32])
	assert.Equal(t, key[:32], key[32:64])
	assert.Equal(t, key[:32], key[64:96])

	// Shorter keystreams are prefixes of longer ones.
	assert.Equal(t, key[:10], DeriveKey("s3cret", 10))
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		plaintext string
		secret    string
	}{
		{"simple", "Which 19th century lighthouse keeper kept a pet seal?", "canary abc123"},
		{"empty plaintext", "", "some-secret"},
		{"unicode", "Quelle équipe a gagné? — 北海道 🎿", "clé"},
		{"long", longText(4096), "k"},
		{"plaintext longer than digest", longText(33), "exactly-one-block-plus-one"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encrypt(tc.plaintext, tc.secret)
			decoded, err := Decrypt(encoded, tc.secret)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, decoded)
		})
	}
}

func TestDecryptWrongSecretDoesNotRoundTrip(t *testing.T) {
	encoded := Encrypt("the answer is 42", "right-secret")
	decoded, err := Decrypt(encoded, "wrong-secret")
	if err == nil {
		// XOR with the wrong keystream can still land on valid UTF-8;
		// it must never land on the original plaintext.
		assert.NotEqual(t, "the answer is 42", decoded)
	}
}

func TestDecryptEmptySecret(t *testing.T) {
	_, err := Decrypt("aGVsbG8=", "")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, StageKey, decodeErr.Stage)
	assert.True(t, errors.Is(err, ErrEmptySecret))
}

func TestDecryptBadBase64(t *testing.T) {
	_, err := Decrypt("!!!not base64!!!", "secret")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, StageBase64, decodeErr.Stage)
}

func TestDecryptInvalidUTF8(t *testing.T) {
	// Build a ciphertext whose XOR result is 0xFF 0xFE - never valid UTF-8.
	secret := "secret"
	key := DeriveKey(secret, 2)
	ct := []byte{0xFF ^ key[0], 0xFE ^ key[1]}

	_, err := Decrypt(base64.StdEncoding.EncodeToString(ct), secret)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, StageUTF8, decodeErr.Stage)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))
}

func TestDecryptEmptyCiphertext(t *testing.T) {
	// Datasets store missing answers as empty cells; those decode to "".
	decoded, err := Decrypt("", "secret")
	require.NoError(t, err)
	assert.Equal(t, "", decoded)
}

func longText(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('a' + i%26)
	}
	return string(buf)
}
