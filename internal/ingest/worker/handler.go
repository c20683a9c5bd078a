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
	"net/http"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/retr0h/chainlog/internal/ingest"
	"github.com/retr0h/chainlog/internal/telemetry"
	"github.com/retr0h/chainlog/internal/validation"
)

// processedCounter counts drained ingest messages by outcome. The global
// meter delegates to the provider installed at startup.
var processedCounter, _ = otel.Meter("chainlog-worker").
	Int64Counter(
		"chainlog.ingest.processed",
		metric.WithDescription("Queued append requests drained from the ingest stream."),
	)

// handleEntryMessage processes one queued append request.
//
// Failure handling splits two ways: a payload that cannot ever succeed
// (unparseable bytes, input failing validation) is terminated so the
// stream does not redeliver it, while a transient failure (chain
// contention, store unavailable) returns an error and leaves the
// message unacknowledged for the consumer backoff schedule to retry.
func (w *Worker) handleEntryMessage(
	msg jetstream.Msg,
) error {
	// Extract trace context from NATS message headers and create a processing span
	ctx := telemetry.ExtractTraceContextFromHeader(
		context.Background(),
		http.Header(msg.Headers()),
	)
	ctx, span := otel.Tracer("chainlog-worker").Start(ctx, "ingest.append")
	defer span.End()

	var req ingest.Request
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		w.logger.ErrorContext(
			ctx,
			"terminating malformed append request",
			slog.String("subject", msg.Subject()),
			slog.String("error", err.Error()),
		)
		processedCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", "terminated"),
		))
		_ = msg.Term()

		return nil
	}

	// The publish path validates before enqueue, so this only rejects
	// requests published to the subject directly.
	if hint, ok := validation.Struct(req.Input); !ok {
		w.logger.ErrorContext(
			ctx,
			"terminating invalid append request",
			slog.String("request_id", req.ID),
			slog.String("error", hint),
		)
		processedCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", "terminated"),
		))
		_ = msg.Term()

		return nil
	}

	span.SetAttributes(
		attribute.String("ingest.request_id", req.ID),
		attribute.String("audit.action", string(req.Input.Action)),
		attribute.String("audit.resource_type", req.Input.ResourceType),
	)

	// Stamp the queued request ID so the committed entry stays
	// correlatable with the response the submitter got at enqueue time.
	if req.Input.RequestID == "" {
		req.Input.RequestID = req.ID
	}

	w.logger.InfoContext(
		ctx,
		"processing append request",
		slog.String("request_id", req.ID),
		slog.String("action", string(req.Input.Action)),
		slog.String("resource_type", req.Input.ResourceType),
	)

	entry, err := w.appender.Append(ctx, req.Input)
	if err != nil {
		w.logger.ErrorContext(
			ctx,
			"append failed",
			slog.String("request_id", req.ID),
			slog.String("error", err.Error()),
		)
		processedCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", "retried"),
		))

		return err
	}

	processedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "committed"),
	))

	w.logger.InfoContext(
		ctx,
		"queued entry committed",
		slog.String("request_id", req.ID),
		slog.Int64("sequence", entry.Sequence),
		slog.String("id", entry.ID),
		slog.Duration("queue_latency", time.Since(req.EnqueuedAt)),
	)

	return nil
}
