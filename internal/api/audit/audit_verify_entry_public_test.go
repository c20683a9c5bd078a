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
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	auditapi "github.com/retr0h/chainlog/internal/api/audit"
	auditstore "github.com/retr0h/chainlog/internal/audit"
)

type AuditVerifyEntryPublicTestSuite struct {
	suite.Suite

	handler  *auditapi.Audit
	store    *fakeStore
	verifier *fakeVerifier
}

func (s *AuditVerifyEntryPublicTestSuite) SetupTest() {
	s.store = &fakeStore{}
	s.verifier = &fakeVerifier{}
	s.handler = auditapi.New(
		slog.Default(),
		s.store,
		&fakeAppender{},
		s.verifier,
		&fakePublisher{},
	)
}

func (s *AuditVerifyEntryPublicTestSuite) TestGetAuditVerifyBySeq() {
	entry := &auditstore.Entry{
		ID:       "550e8400-e29b-41d4-a716-446655440005",
		Sequence: 5,
	}

	tests := []struct {
		name         string
		seq          string
		setup        func()
		wantCode     int
		validateFunc func(body []byte)
	}{
		{
			name: "returns valid for intact entry",
			seq:  "5",
			setup: func() {
				s.store.getEntry = entry
				s.verifier.entryValid = true
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var got auditapi.VerifyEntryResponse
				s.Require().NoError(json.Unmarshal(body, &got))
				s.True(got.Valid)
				s.Equal(int64(5), got.SequenceNumber)
				s.Equal(entry.ID, got.ID)
				s.Equal(entry.ID, s.verifier.gotID)
			},
		},
		{
			name: "returns invalid for tampered entry",
			seq:  "5",
			setup: func() {
				s.store.getEntry = entry
				s.verifier.entryValid = false
			},
			wantCode: http.StatusOK,
			validateFunc: func(body []byte) {
				var got auditapi.VerifyEntryResponse
				s.Require().NoError(json.Unmarshal(body, &got))
				s.False(got.Valid)
			},
		},
		{
			name: "returns 404 when entry does not exist",
			seq:  "99",
			setup: func() {
				s.store.getErr = auditstore.ErrEntryNotFound
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "returns 400 on non numeric sequence",
			seq:      "five",
			setup:    func() {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "returns 500 when verification cannot run",
			seq:  "5",
			setup: func() {
				s.store.getEntry = entry
				s.verifier.entryErr = fmt.Errorf("nats: timeout")
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setup()

			ctx, rec := newGetContext("/audit/" + tt.seq + "/verify")
			ctx.SetParamNames("seq")
			ctx.SetParamValues(tt.seq)

			s.Require().NoError(s.handler.GetAuditVerifyBySeq(ctx))

			s.Equal(tt.wantCode, rec.Code)
			if tt.validateFunc != nil {
				tt.validateFunc(rec.Body.Bytes())
			}
		})
	}
}

func TestAuditVerifyEntryPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditVerifyEntryPublicTestSuite))
}
