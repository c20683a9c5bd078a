// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signer computes content hashes and HMAC-SHA256 signatures over
// canonical entry encodings, using keys from an injected Keyring.
type Signer struct {
	keyring *Keyring
}

// NewSigner creates a Signer over the given keyring.
func NewSigner(
	keyring *Keyring,
) *Signer {
	return &Signer{
		keyring: keyring,
	}
}

// ContentHash returns the hex SHA-256 of a canonical encoding. It is a
// pure function of the bytes: recomputing it reproduces the stored value
// if and only if no signed field was altered.
func ContentHash(canonical []byte) string {
	sum := sha256.Sum256(canonical)

	return hex.EncodeToString(sum[:])
}

// ActiveKeyID returns the id of the key new signatures are made with.
// Entries record it before encoding, so the id itself is signed.
func (s *Signer) ActiveKeyID() string {
	id, _ := s.keyring.Active()

	return id
}

// Sign hashes and signs canonical bytes with the active key, returning
// the content hash and the signature, both hex.
func (s *Signer) Sign(
	canonical []byte,
) (string, string) {
	_, key := s.keyring.Active()

	mac := hmac.New(sha256.New, key)
	mac.Write(canonical)

	return ContentHash(canonical), hex.EncodeToString(mac.Sum(nil))
}

// SignatureValid recomputes the HMAC over canonical bytes under the named
// key and compares it to the stored signature in constant time. A key the
// keyring does not hold returns ErrUnknownKeyID.
func (s *Signer) SignatureValid(
	canonical []byte,
	keyID string,
	signature string,
) (bool, error) {
	key, err := s.keyring.Lookup(keyID)
	if err != nil {
		return false, err
	}

	stored, err := hex.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write(canonical)

	return hmac.Equal(mac.Sum(nil), stored), nil
}
