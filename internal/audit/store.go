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
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// KV is the subset of the JetStream key-value API the chain store needs.
// Narrowed so tests can mock it. Note the absence of Put and Delete:
// committed entries are created exactly once and never overwritten.
type KV interface {
	// Get returns the entry for a key.
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	// Create stores a value only if the key does not yet exist.
	Create(ctx context.Context, key string, value []byte) (uint64, error)
	// Update stores a value only if the key is at the given revision.
	Update(ctx context.Context, key string, value []byte, revision uint64) (uint64, error)
	// Bucket returns the bucket name.
	Bucket() string
}

// ensure the real JetStream bucket satisfies KV at compile time.
var _ KV = (jetstream.KeyValue)(nil)

// Store is the durable chain storage consumed by the append pipeline,
// the verifier, and the query surface.
type Store interface {
	// Tail returns the sequence number and content hash of the last
	// committed entry. An empty chain reports sequence 0 and
	// GenesisHash.
	Tail(ctx context.Context) (int64, string, error)
	// Commit durably writes a fully signed entry at its sequence
	// number. If a concurrent writer already committed that sequence,
	// Commit returns ErrAllocationConflict and writes nothing.
	Commit(ctx context.Context, entry Entry) error
	// Get returns the committed entry at a sequence number, or
	// ErrEntryNotFound.
	Get(ctx context.Context, seq int64) (*Entry, error)
	// GetByID returns the committed entry with the given ID, or
	// ErrEntryNotFound.
	GetByID(ctx context.Context, id string) (*Entry, error)
	// List returns entries matching the filter, newest first, with
	// offset/limit pagination, plus the total match count.
	List(ctx context.Context, filter ListFilter, limit int, offset int) ([]Entry, int, error)
}
