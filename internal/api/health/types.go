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
	"log/slog"
	"time"
)

// Checker checks the health of a dependency.
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// MetricsProvider retrieves system metrics for the detailed endpoint.
type MetricsProvider interface {
	GetNATSInfo(ctx context.Context) (*NATSMetrics, error)
	GetStreamInfo(ctx context.Context) ([]StreamMetrics, error)
	GetKVInfo(ctx context.Context) ([]KVMetrics, error)
	GetConsumerStats(ctx context.Context) (*ConsumerMetrics, error)
	GetChainStats(ctx context.Context) (*ChainMetrics, error)
	GetVerificationStats(ctx context.Context) (*VerificationMetrics, error)
}

// NATSMetrics holds NATS connection information.
type NATSMetrics struct {
	URL     string `json:"url"`
	Version string `json:"version"`
}

// StreamMetrics holds JetStream stream statistics.
type StreamMetrics struct {
	Name      string `json:"name"`
	Messages  uint64 `json:"messages"`
	Bytes     uint64 `json:"bytes"`
	Consumers int    `json:"consumers"`
}

// KVMetrics holds KV bucket statistics.
type KVMetrics struct {
	Name  string `json:"name"`
	Keys  int    `json:"keys"`
	Bytes uint64 `json:"bytes"`
}

// ConsumerDetail holds per-consumer delivery statistics.
type ConsumerDetail struct {
	Name        string `json:"name"`
	Pending     int    `json:"pending"`
	AckPending  int    `json:"ack_pending"`
	Redelivered int    `json:"redelivered"`
}

// ConsumerMetrics holds JetStream consumer statistics.
type ConsumerMetrics struct {
	Total     int              `json:"total"`
	Consumers []ConsumerDetail `json:"consumers,omitempty"`
}

// ChainMetrics holds audit chain statistics. TailSeq is also the entry
// count since sequence numbers are dense from one.
type ChainMetrics struct {
	TailSeq  int64  `json:"tail_seq"`
	TailHash string `json:"tail_hash"`
}

// VerificationMetrics summarizes the most recent verification sweep.
type VerificationMetrics struct {
	Valid          bool      `json:"valid"`
	FromSeq        int64     `json:"from_seq"`
	ToSeq          int64     `json:"to_seq"`
	EntriesChecked int       `json:"entries_checked"`
	FirstBreakSeq  *int64    `json:"first_break_seq,omitempty"`
	BreakKind      string    `json:"break_kind,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// ClosureMetricsProvider implements MetricsProvider using function closures.
type ClosureMetricsProvider struct {
	NATSInfoFn          func(ctx context.Context) (*NATSMetrics, error)
	StreamInfoFn        func(ctx context.Context) ([]StreamMetrics, error)
	KVInfoFn            func(ctx context.Context) ([]KVMetrics, error)
	ConsumerStatsFn     func(ctx context.Context) (*ConsumerMetrics, error)
	ChainStatsFn        func(ctx context.Context) (*ChainMetrics, error)
	VerificationStatsFn func(ctx context.Context) (*VerificationMetrics, error)
}

// GetNATSInfo delegates to the NATSInfoFn closure.
func (p *ClosureMetricsProvider) GetNATSInfo(
	ctx context.Context,
) (*NATSMetrics, error) {
	return p.NATSInfoFn(ctx)
}

// GetStreamInfo delegates to the StreamInfoFn closure.
func (p *ClosureMetricsProvider) GetStreamInfo(
	ctx context.Context,
) ([]StreamMetrics, error) {
	return p.StreamInfoFn(ctx)
}

// GetKVInfo delegates to the KVInfoFn closure.
func (p *ClosureMetricsProvider) GetKVInfo(
	ctx context.Context,
) ([]KVMetrics, error) {
	return p.KVInfoFn(ctx)
}

// GetConsumerStats delegates to the ConsumerStatsFn closure.
func (p *ClosureMetricsProvider) GetConsumerStats(
	ctx context.Context,
) (*ConsumerMetrics, error) {
	return p.ConsumerStatsFn(ctx)
}

// GetChainStats delegates to the ChainStatsFn closure.
func (p *ClosureMetricsProvider) GetChainStats(
	ctx context.Context,
) (*ChainMetrics, error) {
	return p.ChainStatsFn(ctx)
}

// GetVerificationStats delegates to the VerificationStatsFn closure.
func (p *ClosureMetricsProvider) GetVerificationStats(
	ctx context.Context,
) (*VerificationMetrics, error) {
	return p.VerificationStatsFn(ctx)
}

// Health implementation of the Health APIs operations.
type Health struct {
	// Checker performs dependency health checks.
	Checker Checker
	// StartTime records when the server started.
	StartTime time.Time
	// Version is the application version string.
	Version string
	// Metrics provides system metrics (optional, can be nil).
	Metrics MetricsProvider
	logger  *slog.Logger
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the readiness probe body.
type ReadyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ComponentHealth reports the state of a single dependency.
type ComponentHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// DetailedHealthResponse reports per-component health plus system metrics.
type DetailedHealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Version    string                     `json:"version"`
	Uptime     string                     `json:"uptime"`

	NATS         *NATSMetrics         `json:"nats,omitempty"`
	Streams      []StreamMetrics      `json:"streams,omitempty"`
	KVBuckets    []KVMetrics          `json:"kv_buckets,omitempty"`
	Consumers    *ConsumerMetrics     `json:"consumers,omitempty"`
	Chain        *ChainMetrics        `json:"chain,omitempty"`
	Verification *VerificationMetrics `json:"verification,omitempty"`
}
