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
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/audit/mocks"
)

type KVStorePublicTestSuite struct {
	suite.Suite

	ctrl   *gomock.Controller
	mockKV *mocks.MockKV
	store  *audit.KVStore
	ctx    context.Context
}

func (s *KVStorePublicTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockKV = mocks.NewMockKV(s.ctrl)
	s.store = audit.NewKVStore(slog.Default(), s.mockKV)
	s.ctx = context.Background()
}

func (s *KVStorePublicTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *KVStorePublicTestSuite) newEntry(
	seq int64,
) audit.Entry {
	return audit.Entry{
		ID:           fmt.Sprintf("00000000-0000-0000-0000-%012d", seq),
		Sequence:     seq,
		Timestamp:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Action:       audit.ActionCreate,
		ResourceType: "document",
		ResourceID:   "doc-42",
		ActorID:      "usr-1",
		Nonce:        "a1b2c3d4e5f60718a1b2c3d4e5f60718",
		PreviousHash: audit.GenesisHash,
		ContentHash:  fmt.Sprintf("hash-%d", seq),
		Signature:    fmt.Sprintf("sig-%d", seq),
		KeyID:        "primary",
	}
}

func (s *KVStorePublicTestSuite) newKVEntry(
	value []byte,
	revision uint64,
) *mocks.MockKeyValueEntry {
	kve := mocks.NewMockKeyValueEntry(s.ctrl)
	kve.EXPECT().Value().Return(value).AnyTimes()
	kve.EXPECT().Revision().Return(revision).AnyTimes()

	return kve
}

func (s *KVStorePublicTestSuite) TestCommit() {
	entry := s.newEntry(1)
	entryData, err := json.Marshal(entry)
	s.Require().NoError(err)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "commits entry and advances tail",
			setupMock: func() {
				s.mockKV.EXPECT().
					Create(gomock.Any(), "entry.00000000000000000001", entryData).
					Return(uint64(1), nil)
				s.mockKV.EXPECT().
					Create(gomock.Any(), "id."+entry.ID, []byte("1")).
					Return(uint64(2), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Create(gomock.Any(), "chain.tail", gomock.Any()).
					Return(uint64(3), nil)
			},
		},
		{
			name: "returns allocation conflict when sequence taken",
			setupMock: func() {
				s.mockKV.EXPECT().
					Create(gomock.Any(), "entry.00000000000000000001", entryData).
					Return(uint64(0), jetstream.ErrKeyExists)
			},
			wantErr: audit.ErrAllocationConflict,
		},
		{
			name: "returns persistence failure on other create error",
			setupMock: func() {
				s.mockKV.EXPECT().
					Create(gomock.Any(), "entry.00000000000000000001", entryData).
					Return(uint64(0), fmt.Errorf("nats: timeout"))
			},
			wantErr: audit.ErrPersistenceFailure,
		},
		{
			name: "still commits when id index write fails",
			setupMock: func() {
				s.mockKV.EXPECT().
					Create(gomock.Any(), "entry.00000000000000000001", entryData).
					Return(uint64(1), nil)
				s.mockKV.EXPECT().
					Create(gomock.Any(), "id."+entry.ID, []byte("1")).
					Return(uint64(0), fmt.Errorf("nats: timeout"))
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Create(gomock.Any(), "chain.tail", gomock.Any()).
					Return(uint64(3), nil)
			},
		},
		{
			name: "leaves tail alone when cache is already ahead",
			setupMock: func() {
				s.mockKV.EXPECT().
					Create(gomock.Any(), "entry.00000000000000000001", entryData).
					Return(uint64(1), nil)
				s.mockKV.EXPECT().
					Create(gomock.Any(), "id."+entry.ID, []byte("1")).
					Return(uint64(2), nil)
				tail := s.newKVEntry(
					[]byte(`{"sequence_number":5,"content_hash":"hash-5"}`),
					9,
				)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(tail, nil)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()

			err := s.store.Commit(s.ctx, entry)
			if tt.wantErr != nil {
				s.Require().Error(err)
				s.ErrorIs(err, tt.wantErr)
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *KVStorePublicTestSuite) TestGet() {
	entry := s.newEntry(3)
	entryData, err := json.Marshal(entry)
	s.Require().NoError(err)

	tests := []struct {
		name      string
		seq       int64
		setupMock func()
		validate  func(got *audit.Entry, err error)
	}{
		{
			name: "gets entry by sequence",
			seq:  3,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(s.newKVEntry(entryData, 3), nil)
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Require().NotNil(got)
				s.Equal(int64(3), got.Sequence)
				s.Equal(entry.ID, got.ID)
			},
		},
		{
			name: "returns not found for missing sequence",
			seq:  4,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000004").
					Return(nil, jetstream.ErrKeyNotFound)
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().Error(err)
				s.ErrorIs(err, audit.ErrEntryNotFound)
				s.Nil(got)
			},
		},
		{
			name: "returns error on kv failure",
			seq:  3,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(nil, fmt.Errorf("nats: timeout"))
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().Error(err)
				s.NotErrorIs(err, audit.ErrEntryNotFound)
				s.Nil(got)
			},
		},
		{
			name: "returns error on corrupt payload",
			seq:  3,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(s.newKVEntry([]byte("{not json"), 3), nil)
			},
			validate: func(got *audit.Entry, err error) {
				s.Error(err)
				s.Nil(got)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()

			got, err := s.store.Get(s.ctx, tt.seq)
			tt.validate(got, err)
		})
	}
}

func (s *KVStorePublicTestSuite) TestGetByID() {
	entry := s.newEntry(3)
	entryData, err := json.Marshal(entry)
	s.Require().NoError(err)

	other := s.newEntry(2)
	otherData, err := json.Marshal(other)
	s.Require().NoError(err)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		validate  func(got *audit.Entry, err error)
	}{
		{
			name: "resolves entry through id index",
			id:   entry.ID,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "id."+entry.ID).
					Return(s.newKVEntry([]byte("3"), 1), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(s.newKVEntry(entryData, 3), nil)
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Require().NotNil(got)
				s.Equal(entry.ID, got.ID)
			},
		},
		{
			name: "falls back to scan when index entry is missing",
			id:   other.ID,
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "id."+other.ID).
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(s.newKVEntry(
						[]byte(`{"sequence_number":3,"content_hash":"hash-3"}`),
						5,
					), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000004").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(s.newKVEntry(entryData, 3), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000002").
					Return(s.newKVEntry(otherData, 2), nil)
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().NoError(err)
				s.Require().NotNil(got)
				s.Equal(other.ID, got.ID)
				s.Equal(int64(2), got.Sequence)
			},
		},
		{
			name: "returns not found when id is nowhere",
			id:   "missing",
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "id.missing").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000001").
					Return(nil, jetstream.ErrKeyNotFound)
			},
			validate: func(got *audit.Entry, err error) {
				s.Require().Error(err)
				s.ErrorIs(err, audit.ErrEntryNotFound)
				s.Nil(got)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()

			got, err := s.store.GetByID(s.ctx, tt.id)
			tt.validate(got, err)
		})
	}
}

func (s *KVStorePublicTestSuite) TestTail() {
	entry2 := s.newEntry(2)
	entry2Data, err := json.Marshal(entry2)
	s.Require().NoError(err)

	tests := []struct {
		name      string
		setupMock func()
		validate  func(seq int64, hash string, err error)
	}{
		{
			name: "empty chain reports genesis",
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000001").
					Return(nil, jetstream.ErrKeyNotFound)
			},
			validate: func(seq int64, hash string, err error) {
				s.Require().NoError(err)
				s.Equal(int64(0), seq)
				s.Equal(audit.GenesisHash, hash)
			},
		},
		{
			name: "repairs stale tail cache by walking forward",
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(s.newKVEntry(
						[]byte(`{"sequence_number":1,"content_hash":"hash-1"}`),
						7,
					), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000002").
					Return(s.newKVEntry(entry2Data, 2), nil)
				s.mockKV.EXPECT().
					Get(gomock.Any(), "entry.00000000000000000003").
					Return(nil, jetstream.ErrKeyNotFound)
				s.mockKV.EXPECT().
					Update(gomock.Any(), "chain.tail", gomock.Any(), uint64(7)).
					Return(uint64(8), nil)
			},
			validate: func(seq int64, hash string, err error) {
				s.Require().NoError(err)
				s.Equal(int64(2), seq)
				s.Equal("hash-2", hash)
			},
		},
		{
			name: "returns error when tail read fails",
			setupMock: func() {
				s.mockKV.EXPECT().
					Get(gomock.Any(), "chain.tail").
					Return(nil, fmt.Errorf("nats: timeout"))
			},
			validate: func(seq int64, hash string, err error) {
				s.Error(err)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.setupMock()

			seq, hash, err := s.store.Tail(s.ctx)
			tt.validate(seq, hash, err)
		})
	}
}

func TestKVStorePublicTestSuite(t *testing.T) {
	suite.Run(t, new(KVStorePublicTestSuite))
}
