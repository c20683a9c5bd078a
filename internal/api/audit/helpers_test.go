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
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	auditstore "github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/ingest"
)

// fakeStore is a scripted in-memory audit store for handler tests.
// List applies limit/offset windowing over the scripted entries the
// way the real store does.
type fakeStore struct {
	// Get
	getEntry *auditstore.Entry
	getErr   error
	gotSeq   int64

	// List
	listEntries []auditstore.Entry
	listErr     error
	gotFilter   auditstore.ListFilter
	gotLimit    int
	gotOffset   int
}

func (f *fakeStore) Get(
	_ context.Context,
	seq int64,
) (*auditstore.Entry, error) {
	f.gotSeq = seq
	return f.getEntry, f.getErr
}

func (f *fakeStore) List(
	_ context.Context,
	filter auditstore.ListFilter,
	limit int,
	offset int,
) ([]auditstore.Entry, int, error) {
	f.gotFilter = filter
	f.gotLimit = limit
	f.gotOffset = offset

	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	total := len(f.listEntries)
	if offset >= total {
		return []auditstore.Entry{}, total, nil
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return f.listEntries[offset:end], total, nil
}

// fakeAppender records the committed input and returns a scripted
// entry.
type fakeAppender struct {
	entry    *auditstore.Entry
	err      error
	gotInput auditstore.Input
}

func (f *fakeAppender) Append(
	_ context.Context,
	input auditstore.Input,
) (*auditstore.Entry, error) {
	f.gotInput = input
	return f.entry, f.err
}

// fakeVerifier returns scripted verification results.
type fakeVerifier struct {
	report   *auditstore.VerificationReport
	rangeErr error
	gotFrom  int64
	gotTo    int64

	entryValid bool
	entryErr   error
	gotID      string
}

func (f *fakeVerifier) VerifyRange(
	_ context.Context,
	from int64,
	to int64,
) (*auditstore.VerificationReport, error) {
	f.gotFrom = from
	f.gotTo = to
	return f.report, f.rangeErr
}

func (f *fakeVerifier) VerifyEntry(
	_ context.Context,
	id string,
) (bool, error) {
	f.gotID = id
	return f.entryValid, f.entryErr
}

// fakePublisher records the enqueued input and returns a scripted
// request.
type fakePublisher struct {
	req      *ingest.Request
	err      error
	gotInput auditstore.Input
}

func (f *fakePublisher) Enqueue(
	_ context.Context,
	input auditstore.Input,
) (*ingest.Request, error) {
	f.gotInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.req, nil
}

// newJSONContext builds an echo context carrying a JSON body.
func newJSONContext(
	method string,
	target string,
	body string,
) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// newGetContext builds an echo context for a GET request.
func newGetContext(
	target string,
) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}
