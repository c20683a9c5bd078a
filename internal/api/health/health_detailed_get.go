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

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GetHealthDetailed returns per-component health with system metrics
// (authenticated).
func (h *Health) GetHealthDetailed(
	ctx echo.Context,
) error {
	var natsErr, kvErr error
	if checker, ok := h.Checker.(*NATSChecker); ok {
		natsErr = checker.CheckNATS()
		kvErr = checker.CheckKV()
	}

	return h.buildDetailedResponse(ctx, natsErr, kvErr)
}

// buildDetailedResponse constructs the detailed health response from
// component checks and metrics.
func (h *Health) buildDetailedResponse(
	ctx echo.Context,
	natsErr error,
	kvErr error,
) error {
	natsComponent := ComponentHealth{Status: "ok"}
	if natsErr != nil {
		natsComponent = ComponentHealth{Status: "error", Error: natsErr.Error()}
	}

	kvComponent := ComponentHealth{Status: "ok"}
	if kvErr != nil {
		kvComponent = ComponentHealth{Status: "error", Error: kvErr.Error()}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	components := map[string]ComponentHealth{
		"nats": natsComponent,
		"kv":   kvComponent,
	}

	overall := "ok"
	if natsErr != nil || kvErr != nil {
		overall = "degraded"
	}

	resp := DetailedHealthResponse{
		Status:     overall,
		Components: components,
		Version:    h.Version,
		Uptime:     uptime,
	}

	if h.Metrics != nil {
		h.populateMetrics(ctx.Request().Context(), &resp)
	}

	if overall != "ok" {
		return ctx.JSON(http.StatusServiceUnavailable, resp)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// populateMetrics enriches the response with system metrics. Each call is
// independent, so a failed collector is logged and skipped rather than
// failing the whole response.
func (h *Health) populateMetrics(
	ctx context.Context,
	resp *DetailedHealthResponse,
) {
	if natsInfo, err := h.Metrics.GetNATSInfo(ctx); err != nil {
		h.logger.Warn("failed to get NATS info for health", "error", err)
	} else {
		resp.NATS = natsInfo
	}

	if streams, err := h.Metrics.GetStreamInfo(ctx); err != nil {
		h.logger.Warn("failed to get stream info for health", "error", err)
	} else {
		resp.Streams = streams
	}

	if kvBuckets, err := h.Metrics.GetKVInfo(ctx); err != nil {
		h.logger.Warn("failed to get KV info for health", "error", err)
	} else {
		resp.KVBuckets = kvBuckets
	}

	if consumerStats, err := h.Metrics.GetConsumerStats(ctx); err != nil {
		h.logger.Warn("failed to get consumer stats for health", "error", err)
	} else {
		resp.Consumers = consumerStats
	}

	if chainStats, err := h.Metrics.GetChainStats(ctx); err != nil {
		h.logger.Warn("failed to get chain stats for health", "error", err)
	} else {
		resp.Chain = chainStats
	}

	// A nil report with no error means no sweep has completed yet.
	if verification, err := h.Metrics.GetVerificationStats(ctx); err != nil {
		h.logger.Warn("failed to get verification stats for health", "error", err)
	} else if verification != nil {
		resp.Verification = verification
	}
}
