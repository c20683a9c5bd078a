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

package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/config"
	"github.com/retr0h/chainlog/internal/ingest"
)

// fakeMsg implements jetstream.Msg, recording acknowledgement calls.
type fakeMsg struct {
	data    []byte
	subject string

	acked  bool
	naked  bool
	termed bool
}

func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) { return &jetstream.MsgMetadata{}, nil }
func (m *fakeMsg) Data() []byte                              { return m.data }
func (m *fakeMsg) Headers() nats.Header                      { return nats.Header{} }
func (m *fakeMsg) Subject() string                           { return m.subject }
func (m *fakeMsg) Reply() string                             { return "" }
func (m *fakeMsg) Ack() error                                { m.acked = true; return nil }
func (m *fakeMsg) DoubleAck(context.Context) error           { m.acked = true; return nil }
func (m *fakeMsg) Nak() error                                { m.naked = true; return nil }
func (m *fakeMsg) NakWithDelay(time.Duration) error          { m.naked = true; return nil }
func (m *fakeMsg) InProgress() error                         { return nil }
func (m *fakeMsg) Term() error                               { m.termed = true; return nil }
func (m *fakeMsg) TermWithReason(string) error               { m.termed = true; return nil }

// fakeAppender implements EntryAppender, recording the input it got.
type fakeAppender struct {
	gotInput *audit.Input
	entry    *audit.Entry
	err      error
}

func (f *fakeAppender) Append(
	_ context.Context,
	in audit.Input,
) (*audit.Entry, error) {
	f.gotInput = &in
	if f.err != nil {
		return nil, f.err
	}

	return f.entry, nil
}

type HandlerTestSuite struct {
	suite.Suite

	appender *fakeAppender
	worker   *Worker
}

func (s *HandlerTestSuite) SetupTest() {
	s.appender = &fakeAppender{
		entry: &audit.Entry{
			ID:       "550e8400-e29b-41d4-a716-446655440000",
			Sequence: 7,
		},
	}

	appConfig := config.Config{
		Worker: config.Worker{
			MaxInflight: 4,
		},
		NATS: config.NATS{
			Ingest: config.NATSIngest{
				Stream: "CHAINLOG_INGEST",
				Consumer: config.NATSIngestConsumer{
					Name: "chainlog-appender",
				},
			},
		},
	}

	s.worker = New(appConfig, slog.Default(), nil, s.appender, "CHAINLOG_INGEST")
}

func validRequest() ingest.Request {
	return ingest.Request{
		ID: "f2f13a8a-53f4-4d4b-9d24-7fcf9c6cd3b3",
		Input: audit.Input{
			Action:       audit.ActionDelete,
			ResourceType: "api_key",
			ResourceID:   "key-7",
			ActorID:      "usr-1",
		},
		EnqueuedAt: time.Now().UTC(),
	}
}

func (s *HandlerTestSuite) TestHandleEntryMessage() {
	tests := []struct {
		name         string
		data         func() []byte
		appendErr    error
		wantErr      bool
		wantTermed   bool
		wantAppended bool
		wantCheck    func()
	}{
		{
			name: "when the payload is not json",
			data: func() []byte {
				return []byte("{not json")
			},
			wantTermed: true,
		},
		{
			name: "when the input fails validation",
			data: func() []byte {
				req := validRequest()
				req.Input.ActorID = ""
				data, _ := json.Marshal(req)
				return data
			},
			wantTermed: true,
		},
		{
			name: "when the append fails transiently",
			data: func() []byte {
				data, _ := json.Marshal(validRequest())
				return data
			},
			appendErr:    audit.ErrPersistenceFailure,
			wantErr:      true,
			wantAppended: true,
		},
		{
			name: "when the append succeeds",
			data: func() []byte {
				data, _ := json.Marshal(validRequest())
				return data
			},
			wantAppended: true,
			wantCheck: func() {
				// The queued request ID becomes the entry's request id.
				s.Equal("f2f13a8a-53f4-4d4b-9d24-7fcf9c6cd3b3", s.appender.gotInput.RequestID)
			},
		},
		{
			name: "when the input carries its own request id",
			data: func() []byte {
				req := validRequest()
				req.Input.RequestID = "req-from-api"
				data, _ := json.Marshal(req)
				return data
			},
			wantAppended: true,
			wantCheck: func() {
				s.Equal("req-from-api", s.appender.gotInput.RequestID)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.appender.err = tt.appendErr

			msg := &fakeMsg{
				data:    tt.data(),
				subject: "chainlog.ingest.entry",
			}

			err := s.worker.handleEntryMessage(msg)

			if tt.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}

			s.Equal(tt.wantTermed, msg.termed)
			s.False(msg.naked)

			if tt.wantAppended {
				s.NotNil(s.appender.gotInput)
			} else {
				s.Nil(s.appender.gotInput)
			}

			if tt.wantCheck != nil {
				tt.wantCheck()
			}
		})
	}
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
