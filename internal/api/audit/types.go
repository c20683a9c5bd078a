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

// Package audit provides audit log API handlers.
package audit

import (
	"context"
	"log/slog"
	"time"

	auditstore "github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/ingest"
)

// Store is the subset of the audit store the read handlers need.
type Store interface {
	// Get returns the committed entry at a sequence number, or
	// auditstore.ErrEntryNotFound.
	Get(ctx context.Context, seq int64) (*auditstore.Entry, error)
	// List returns entries matching the filter, newest first, with
	// offset/limit pagination, plus the total match count.
	List(
		ctx context.Context,
		filter auditstore.ListFilter,
		limit int,
		offset int,
	) ([]auditstore.Entry, int, error)
}

// Appender commits audit events to the chain synchronously.
type Appender interface {
	Append(ctx context.Context, input auditstore.Input) (*auditstore.Entry, error)
}

// Verifier re-checks committed entries against the hash chain.
type Verifier interface {
	VerifyRange(
		ctx context.Context,
		from int64,
		to int64,
	) (*auditstore.VerificationReport, error)
	VerifyEntry(ctx context.Context, id string) (bool, error)
}

// Publisher enqueues append requests for asynchronous processing.
type Publisher interface {
	Enqueue(ctx context.Context, input auditstore.Input) (*ingest.Request, error)
}

// Audit implementation of the audit log API operations.
type Audit struct {
	// Store reads committed entries.
	Store Store
	// Appender writes entries synchronously.
	Appender Appender
	// Verifier re-checks hash chain and signatures.
	Verifier Verifier
	// Publisher enqueues asynchronous appends.
	Publisher Publisher

	logger *slog.Logger
}

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	store Store,
	appender Appender,
	verifier Verifier,
	publisher Publisher,
) *Audit {
	return &Audit{
		Store:     store,
		Appender:  appender,
		Verifier:  verifier,
		Publisher: publisher,
		logger:    logger,
	}
}

// ListParams are the query parameters accepted by GetAuditLogs.
type ListParams struct {
	Limit        *int   `query:"limit"         validate:"omitempty,gte=1,lte=100"`
	Offset       *int   `query:"offset"        validate:"omitempty,gte=0"`
	ActorID      string `query:"actor_id"`
	OrgID        string `query:"org_id"`
	Action       string `query:"action"`
	ResourceType string `query:"resource_type"`
	Since        string `query:"since"         validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Until        string `query:"until"         validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// VerifyParams are the query parameters accepted by GetAuditVerify.
type VerifyParams struct {
	From *int64 `query:"from" validate:"omitempty,gte=1"`
	To   *int64 `query:"to"   validate:"omitempty,gte=1"`
}

// ListResponse is one page of audit entries.
type ListResponse struct {
	TotalItems int                `json:"total_items"`
	Items      []auditstore.Entry `json:"items"`
}

// ExportResponse is the full log in chain order, oldest first.
type ExportResponse struct {
	TotalItems int                `json:"total_items"`
	Items      []auditstore.Entry `json:"items"`
}

// EnqueueResponse acknowledges an asynchronous append.
type EnqueueResponse struct {
	RequestID  string    `json:"request_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// VerifyEntryResponse reports a single entry check.
type VerifyEntryResponse struct {
	SequenceNumber int64  `json:"sequence_number"`
	ID             string `json:"id"`
	Valid          bool   `json:"valid"`
}
