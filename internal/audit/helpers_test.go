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

package audit_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/retr0h/chainlog/internal/audit"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

// memKV is an in-memory KV with real create and compare-and-swap update
// semantics, so chain tests exercise the same serialization behavior a
// JetStream bucket provides.
type memKV struct {
	mu   sync.Mutex
	data map[string]memKVRecord
}

type memKVRecord struct {
	value    []byte
	revision uint64
}

func newMemKV() *memKV {
	return &memKV{data: map[string]memKVRecord{}}
}

func (k *memKV) Get(
	_ context.Context,
	key string,
) (jetstream.KeyValueEntry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec, ok := k.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}

	value := make([]byte, len(rec.value))
	copy(value, rec.value)

	return &memKVEntry{key: key, value: value, revision: rec.revision}, nil
}

func (k *memKV) Create(
	_ context.Context,
	key string,
	value []byte,
) (uint64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.data[key]; ok {
		return 0, jetstream.ErrKeyExists
	}

	k.data[key] = memKVRecord{value: value, revision: 1}

	return 1, nil
}

func (k *memKV) Update(
	_ context.Context,
	key string,
	value []byte,
	revision uint64,
) (uint64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec, ok := k.data[key]
	if !ok || rec.revision != revision {
		return 0, fmt.Errorf("wrong last sequence for key %q", key)
	}

	k.data[key] = memKVRecord{value: value, revision: revision + 1}

	return revision + 1, nil
}

func (k *memKV) Bucket() string {
	return "audit"
}

// tamper overwrites a key in place, bypassing create and update
// semantics, the way a direct write to the backing store would.
func (k *memKV) tamper(
	key string,
	value []byte,
) {
	k.mu.Lock()
	defer k.mu.Unlock()

	rec := k.data[key]
	rec.value = value
	rec.revision++
	k.data[key] = rec
}

// remove deletes a key outright.
func (k *memKV) remove(
	key string,
) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.data, key)
}

// memKVEntry implements jetstream.KeyValueEntry over memKV records.
type memKVEntry struct {
	key      string
	value    []byte
	revision uint64
}

func (e *memKVEntry) Bucket() string                  { return "audit" }
func (e *memKVEntry) Key() string                     { return e.key }
func (e *memKVEntry) Value() []byte                   { return e.value }
func (e *memKVEntry) Revision() uint64                { return e.revision }
func (e *memKVEntry) Created() time.Time              { return time.Time{} }
func (e *memKVEntry) Delta() uint64                   { return 0 }
func (e *memKVEntry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

// entryKey mirrors the bucket's key layout for direct tampering in tests.
func entryKey(seq int64) string {
	return fmt.Sprintf("entry.%020d", seq)
}

// newTestSigner builds a signer over a single-key ring.
func newTestSigner() *audit.Signer {
	keyring, err := audit.NewKeyring("primary", map[string]string{
		"primary": testSigningKey,
	})
	if err != nil {
		panic(err)
	}

	return audit.NewSigner(keyring)
}

// newTestRedactor masks the usual sensitive fields.
func newTestRedactor() *audit.Redactor {
	return audit.NewRedactor(audit.PolicyMask, []string{"password", "ssn", "token"})
}

// chainHarness wires a full append and verify pipeline over a memKV.
type chainHarness struct {
	kv       *memKV
	store    *audit.KVStore
	signer   *audit.Signer
	appender *audit.Appender
	verifier *audit.Verifier
}

func newChainHarness(
	opts ...audit.AppenderOption,
) *chainHarness {
	kv := newMemKV()
	store := audit.NewKVStore(slog.Default(), kv)
	signer := newTestSigner()

	return &chainHarness{
		kv:       kv,
		store:    store,
		signer:   signer,
		appender: audit.NewAppender(slog.Default(), store, signer, newTestRedactor(), opts...),
		verifier: audit.NewVerifier(slog.Default(), store, signer),
	}
}

// append commits a minimal entry for the given action and resource.
func (h *chainHarness) append(
	ctx context.Context,
	action audit.Action,
	resourceID string,
) (*audit.Entry, error) {
	return h.appender.Append(ctx, audit.Input{
		Action:       action,
		ResourceType: "document",
		ResourceID:   resourceID,
		ActorID:      "usr-1",
		ActorEmail:   "user@example.com",
	})
}
