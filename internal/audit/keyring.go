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

import "fmt"

// Keyring holds the HMAC signing keys: one active key used to sign new
// entries, plus any number of retired keys kept so entries signed before
// a rotation remain verifiable. Keys are injected configuration; there
// is no process-wide key.
type Keyring struct {
	activeID string
	keys     map[string][]byte
}

// NewKeyring builds a Keyring from configuration. The active id must name
// a key with non-empty material; anything else refuses to construct, so a
// process can never start in a state where it would append unsigned
// entries.
func NewKeyring(
	activeID string,
	keys map[string]string,
) (*Keyring, error) {
	if activeID == "" {
		return nil, fmt.Errorf("%w: no active key id configured", ErrSigningKeyMissing)
	}

	material := make(map[string][]byte, len(keys))
	for id, secret := range keys {
		if id == "" || secret == "" {
			continue
		}
		material[id] = []byte(secret)
	}

	if len(material[activeID]) == 0 {
		return nil, fmt.Errorf(
			"%w: active key %q has no material",
			ErrSigningKeyMissing,
			activeID,
		)
	}

	return &Keyring{
		activeID: activeID,
		keys:     material,
	}, nil
}

// Active returns the id and material of the key used for new signatures.
func (k *Keyring) Active() (string, []byte) {
	return k.activeID, k.keys[k.activeID]
}

// Lookup returns the material for the named key, active or retired.
func (k *Keyring) Lookup(
	id string,
) ([]byte, error) {
	key, ok := k.keys[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, id)
	}

	return key, nil
}
