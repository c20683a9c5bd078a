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
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultRetryAttempts = 5
	defaultRetryBackoff  = 25 * time.Millisecond
)

// Input carries the logical fields of an audit event, captured at the
// moment of the original action. Asynchronous ingestion serializes an
// Input at enqueue time so delayed execution still records the state as
// it was.
type Input struct {
	// Action is the event kind being recorded.
	Action Action `json:"action" validate:"required"`
	// ResourceType identifies the kind of entity affected.
	ResourceType string `json:"resource_type" validate:"required"`
	// ResourceID identifies the affected entity.
	ResourceID string `json:"resource_id" validate:"required"`
	// ActorID is who performed the action.
	ActorID string `json:"actor_id" validate:"required"`
	// ActorEmail is the actor's email, redacted before persistence.
	ActorEmail string `json:"actor_email,omitempty"`
	// OrgID is the tenant scope, empty for platform-level events.
	OrgID string `json:"org_id,omitempty"`
	// Changes maps field names to before/after values.
	Changes map[string]FieldChange `json:"changes,omitempty"`
	// Metadata carries free-form auxiliary context.
	Metadata map[string]any `json:"metadata,omitempty"`
	// RequestID correlates the entry to the originating request.
	RequestID string `json:"request_id,omitempty"`
}

// AppenderOption configures an Appender.
type AppenderOption func(*Appender)

// WithRetryAttempts bounds how many times an append is attempted before
// the conflict is surfaced to the caller.
func WithRetryAttempts(n int) AppenderOption {
	return func(a *Appender) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithRetryBackoff sets the base delay between append attempts; the delay
// doubles each retry.
func WithRetryBackoff(d time.Duration) AppenderOption {
	return func(a *Appender) {
		if d > 0 {
			a.backoff = d
		}
	}
}

// Appender is the append pipeline: redact, allocate, assemble, encode,
// sign, persist. It is safe for concurrent use; the store's commit point
// is the only serialization between concurrent appends.
type Appender struct {
	store    Store
	signer   *Signer
	redactor *Redactor
	logger   *slog.Logger
	attempts int
	backoff  time.Duration
}

// NewAppender creates an Appender over the given store, signer, and
// redactor.
func NewAppender(
	logger *slog.Logger,
	store Store,
	signer *Signer,
	redactor *Redactor,
	opts ...AppenderOption,
) *Appender {
	a := &Appender{
		store:    store,
		signer:   signer,
		redactor: redactor,
		logger:   logger,
		attempts: defaultRetryAttempts,
		backoff:  defaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Append runs the full pipeline and blocks until the entry is durably
// committed or the retry budget is spent. On an allocation conflict or a
// persistence failure the whole append is retried, never resumed, since
// a previous hash obtained before the failure may no longer be the true
// chain tail. The returned entry is the committed record.
func (a *Appender) Append(
	ctx context.Context,
	in Input,
) (*Entry, error) {
	redacted, err := a.redactInput(in)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		if attempt > 1 {
			if err := a.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		entry, err := a.buildEntry(ctx, redacted)
		if err != nil {
			return nil, err
		}

		err = a.store.Commit(ctx, *entry)
		if err == nil {
			a.logger.Debug(
				"audit entry committed",
				slog.Int64("sequence", entry.Sequence),
				slog.String("id", entry.ID),
				slog.String("action", string(entry.Action)),
			)

			return entry, nil
		}

		if !errors.Is(err, ErrAllocationConflict) && !errors.Is(err, ErrPersistenceFailure) {
			return nil, err
		}

		lastErr = err
		a.logger.Debug(
			"audit append retrying",
			slog.Int("attempt", attempt),
			slog.Int64("sequence", entry.Sequence),
			slog.String("error", err.Error()),
		)
	}

	return nil, fmt.Errorf("append not committed after %d attempts: %w", a.attempts, lastErr)
}

// redactInput applies the redaction policy once, ahead of the retry loop,
// and normalizes the maps so the bytes signed now equal the bytes a later
// verification recomputes from storage.
func (a *Appender) redactInput(
	in Input,
) (Input, error) {
	email, keep := a.redactor.RedactValue(in.ActorEmail)
	if !keep {
		email = ""
	}
	in.ActorEmail = email

	changes, err := normalizeChanges(a.redactor.RedactChanges(in.Changes))
	if err != nil {
		return Input{}, err
	}
	in.Changes = changes

	metadata, err := normalizeMetadata(a.redactor.RedactMetadata(in.Metadata))
	if err != nil {
		return Input{}, err
	}
	in.Metadata = metadata

	return in, nil
}

// buildEntry allocates against the current chain tail and produces a
// fully signed entry for it. Each attempt gets a fresh ID, nonce, and
// timestamp; nothing from a failed attempt is reused.
func (a *Appender) buildEntry(
	ctx context.Context,
	in Input,
) (*Entry, error) {
	tailSeq, tailHash, err := a.store.Tail(ctx)
	if err != nil {
		return nil, fmt.Errorf("read chain tail: %w", err)
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:           uuid.NewString(),
		Sequence:     tailSeq + 1,
		Timestamp:    time.Now().UTC(),
		Action:       in.Action,
		ResourceType: in.ResourceType,
		ResourceID:   in.ResourceID,
		ActorID:      in.ActorID,
		ActorEmail:   in.ActorEmail,
		OrgID:        in.OrgID,
		Changes:      in.Changes,
		Metadata:     in.Metadata,
		RequestID:    in.RequestID,
		Nonce:        nonce,
		PreviousHash: tailHash,
		KeyID:        a.signer.ActiveKeyID(),
	}

	canonical, err := CanonicalEncode(entry)
	if err != nil {
		return nil, err
	}

	entry.ContentHash, entry.Signature = a.signer.Sign(canonical)

	return &entry, nil
}

// wait sleeps the exponential backoff for the given attempt, or returns
// early when the context ends. The delay doubles per attempt, capped at
// 64x the base.
func (a *Appender) wait(
	ctx context.Context,
	attempt int,
) error {
	shift := attempt - 2
	if shift > 6 {
		shift = 6
	}
	delay := a.backoff << shift

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// newNonce returns 16 bytes of fresh randomness, hex encoded.
func newNonce() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	return hex.EncodeToString(b[:]), nil
}
