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

// Package client publishes audit append requests to the ingest stream.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/ingest"
	"github.com/retr0h/chainlog/internal/messaging"
	"github.com/retr0h/chainlog/internal/validation"
)

// Client publishes append requests to the ingest stream.
type Client struct {
	logger     *slog.Logger
	natsClient messaging.NATSClient
}

// New creates a new ingest client using an existing NATS client.
func New(
	logger *slog.Logger,
	natsClient messaging.NATSClient,
) *Client {
	return &Client{
		logger:     logger,
		natsClient: natsClient,
	}
}

// Enqueue validates the input and publishes it to the ingest stream.
// Validation happens here, at the accept boundary, so a malformed event
// is rejected while its submitter is still around to see the error.
func (c *Client) Enqueue(
	ctx context.Context,
	input audit.Input,
) (*ingest.Request, error) {
	if msg, ok := validation.Struct(input); !ok {
		return nil, fmt.Errorf("%w: %s", ingest.ErrInvalidInput, msg)
	}

	req := ingest.Request{
		ID:         uuid.NewString(),
		Input:      input,
		EnqueuedAt: time.Now().UTC(),
	}

	// Request fields are always marshalable
	data, _ := json.Marshal(req)

	subject := ingest.BuildEntrySubject()
	if err := c.natsClient.Publish(ctx, subject, data); err != nil {
		return nil, fmt.Errorf("failed to publish append request: %w", err)
	}

	c.logger.Info(
		"enqueued audit append request",
		slog.String("request_id", req.ID),
		slog.String("subject", subject),
		slog.String("action", string(input.Action)),
		slog.String("resource_type", input.ResourceType),
	)

	return &req, nil
}
