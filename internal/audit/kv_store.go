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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/nats-io/nats.go/jetstream"
)

// ensure KVStore implements Store at compile time.
var _ Store = (*KVStore)(nil)

// marshalJSON is the function used to marshal entries. Override in tests.
var marshalJSON = json.Marshal

// Key layout inside the bucket. Entry keys zero-pad the sequence number
// so lexicographic order equals numeric order.
const (
	entryKeyPrefix = "entry."
	idKeyPrefix    = "id."
	tailKey        = "chain.tail"
)

// tailRecord is the payload of the chain.tail key: a cache of the last
// committed entry's position. It may lag behind the true head (tail
// updates are best-effort); readers repair it by walking forward.
type tailRecord struct {
	Sequence int64  `json:"sequence_number"`
	Hash     string `json:"content_hash"`
}

// KVStore implements Store backed by a NATS JetStream KeyValue bucket.
//
// The atomic Create of an entry key doubles as the sequence allocator's
// serialization point: whichever writer creates `entry.<seq>` first owns
// that sequence, and every loser gets ErrAllocationConflict. A sequence
// number is therefore never committed without its entry, and no two
// entries ever share a predecessor.
type KVStore struct {
	kv     KV
	logger *slog.Logger
}

// NewKVStore creates a new KVStore.
func NewKVStore(
	logger *slog.Logger,
	kv KV,
) *KVStore {
	return &KVStore{
		kv:     kv,
		logger: logger,
	}
}

// Tail returns the sequence and content hash of the last committed entry.
// The cached chain.tail key may be stale, so Tail walks forward from it
// until no further entry exists, then writes the repaired position back
// (best-effort).
func (s *KVStore) Tail(
	ctx context.Context,
) (int64, string, error) {
	cached, revision, err := s.readTail(ctx)
	if err != nil {
		return 0, "", err
	}

	head := cached
	for {
		entry, err := s.Get(ctx, head.Sequence+1)
		if errors.Is(err, ErrEntryNotFound) {
			break
		}
		if err != nil {
			return 0, "", err
		}

		head = tailRecord{Sequence: entry.Sequence, Hash: entry.ContentHash}
	}

	if head != cached {
		s.writeTail(ctx, head, revision)
	}

	return head.Sequence, head.Hash, nil
}

// Commit writes a fully signed entry. The Create of the entry key is the
// commit point; everything after it (ID index, tail cache) is best-effort
// and recoverable.
func (s *KVStore) Commit(
	ctx context.Context,
	entry Entry,
) error {
	data, err := marshalJSON(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if _, err := s.kv.Create(ctx, entryKey(entry.Sequence), data); err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return fmt.Errorf("sequence %d already committed: %w",
				entry.Sequence, ErrAllocationConflict)
		}

		return fmt.Errorf("put audit entry: %w: %w", ErrPersistenceFailure, err)
	}

	if _, err := s.kv.Create(
		ctx,
		idKey(entry.ID),
		[]byte(strconv.FormatInt(entry.Sequence, 10)),
	); err != nil {
		s.logger.Warn(
			"failed to write audit id index",
			slog.String("id", entry.ID),
			slog.Int64("sequence", entry.Sequence),
			slog.String("error", err.Error()),
		)
	}

	s.advanceTail(ctx, tailRecord{Sequence: entry.Sequence, Hash: entry.ContentHash})

	return nil
}

// Get retrieves a single audit entry by sequence number.
func (s *KVStore) Get(
	ctx context.Context,
	seq int64,
) (*Entry, error) {
	kve, err := s.kv.Get(ctx, entryKey(seq))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, fmt.Errorf("sequence %d: %w", seq, ErrEntryNotFound)
		}

		return nil, fmt.Errorf("get audit entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(kve.Value(), &entry); err != nil {
		return nil, fmt.Errorf("unmarshal audit entry: %w", err)
	}

	return &entry, nil
}

// GetByID retrieves a single audit entry by its ID, via the ID index.
// Entries whose index write was lost are found by a backward scan.
func (s *KVStore) GetByID(
	ctx context.Context,
	id string,
) (*Entry, error) {
	kve, err := s.kv.Get(ctx, idKey(id))
	if err == nil {
		seq, parseErr := strconv.ParseInt(string(kve.Value()), 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("parse audit id index: %w", parseErr)
		}

		return s.Get(ctx, seq)
	}
	if !errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, fmt.Errorf("get audit id index: %w", err)
	}

	return s.scanForID(ctx, id)
}

// List returns entries matching the filter, newest first.
func (s *KVStore) List(
	ctx context.Context,
	filter ListFilter,
	limit int,
	offset int,
) ([]Entry, int, error) {
	tailSeq, _, err := s.Tail(ctx)
	if err != nil {
		return nil, 0, err
	}

	matches := make([]Entry, 0, limit)
	for seq := tailSeq; seq >= 1; seq-- {
		entry, err := s.Get(ctx, seq)
		if errors.Is(err, ErrEntryNotFound) {
			// A hole here is tampering. Listing still serves what
			// remains; verification reports the gap.
			continue
		}
		if err != nil {
			return nil, 0, err
		}

		if filter.matches(*entry) {
			matches = append(matches, *entry)
		}
	}

	total := len(matches)
	if offset >= total {
		return []Entry{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return matches[offset:end], total, nil
}

func (s *KVStore) scanForID(
	ctx context.Context,
	id string,
) (*Entry, error) {
	tailSeq, _, err := s.Tail(ctx)
	if err != nil {
		return nil, err
	}

	for seq := tailSeq; seq >= 1; seq-- {
		entry, err := s.Get(ctx, seq)
		if errors.Is(err, ErrEntryNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if entry.ID == id {
			return entry, nil
		}
	}

	return nil, fmt.Errorf("id %s: %w", id, ErrEntryNotFound)
}

// readTail loads the cached tail and its revision. A missing key means an
// empty (or never-cached) chain.
func (s *KVStore) readTail(
	ctx context.Context,
) (tailRecord, uint64, error) {
	kve, err := s.kv.Get(ctx, tailKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return tailRecord{Sequence: 0, Hash: GenesisHash}, 0, nil
		}

		return tailRecord{}, 0, fmt.Errorf("get chain tail: %w", err)
	}

	var tail tailRecord
	if err := json.Unmarshal(kve.Value(), &tail); err != nil {
		return tailRecord{}, 0, fmt.Errorf("unmarshal chain tail: %w", err)
	}

	return tail, kve.Revision(), nil
}

// advanceTail moves the cached tail forward to head if it is still behind
// it. Best-effort: a lost race leaves a stale cache that the next reader
// repairs.
func (s *KVStore) advanceTail(
	ctx context.Context,
	head tailRecord,
) {
	cached, revision, err := s.readTail(ctx)
	if err != nil {
		s.logger.Warn("failed to read chain tail", slog.String("error", err.Error()))
		return
	}

	if cached.Sequence >= head.Sequence {
		return
	}

	s.writeTail(ctx, head, revision)
}

// writeTail CASes the tail cache to head. revision 0 means the key does
// not exist yet.
func (s *KVStore) writeTail(
	ctx context.Context,
	head tailRecord,
	revision uint64,
) {
	data, err := json.Marshal(head)
	if err != nil {
		s.logger.Warn("failed to marshal chain tail", slog.String("error", err.Error()))
		return
	}

	if revision == 0 {
		_, err = s.kv.Create(ctx, tailKey, data)
	} else {
		_, err = s.kv.Update(ctx, tailKey, data, revision)
	}
	if err != nil {
		s.logger.Debug(
			"chain tail cache not advanced",
			slog.Int64("sequence", head.Sequence),
			slog.String("error", err.Error()),
		)
	}
}

func entryKey(seq int64) string {
	return fmt.Sprintf("%s%020d", entryKeyPrefix, seq)
}

func idKey(id string) string {
	return idKeyPrefix + id
}
