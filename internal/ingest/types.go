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

package ingest

import (
	"errors"
	"time"

	"github.com/retr0h/chainlog/internal/audit"
)

// ErrInvalidInput means the audit input failed validation and was never
// enqueued. Callers should reject the request rather than retry it.
var ErrInvalidInput = errors.New("ingest: invalid audit input")

// Request is a queued append request. The audit input is captured in
// full at enqueue time, so the entry written later records the state as
// it was when the action happened, not when the worker got to it.
type Request struct {
	// ID correlates the queued request with the entry the worker
	// eventually commits.
	ID string `json:"id"`
	// Input is the audit event to append.
	Input audit.Input `json:"input"`
	// EnqueuedAt is when the request entered the stream.
	EnqueuedAt time.Time `json:"enqueued_at"`
}
