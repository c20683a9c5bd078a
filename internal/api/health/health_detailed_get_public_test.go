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

package health_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/chainlog/internal/api"
	"github.com/retr0h/chainlog/internal/api/health"
	"github.com/retr0h/chainlog/internal/authtoken"
	"github.com/retr0h/chainlog/internal/config"
)

type stubChecker struct{}

func (s *stubChecker) CheckHealth(
	_ context.Context,
) error {
	return nil
}

const rbacHealthTestSigningKey = "test-signing-key-for-rbac-integration"

type HealthDetailedGetPublicTestSuite struct {
	suite.Suite

	logger *slog.Logger
}

func (s *HealthDetailedGetPublicTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// healthyMetrics returns a provider whose collectors all succeed.
func (s *HealthDetailedGetPublicTestSuite) healthyMetrics() *health.ClosureMetricsProvider {
	return &health.ClosureMetricsProvider{
		NATSInfoFn: func(_ context.Context) (*health.NATSMetrics, error) {
			return &health.NATSMetrics{URL: "nats://localhost:4222", Version: "2.10.0"}, nil
		},
		StreamInfoFn: func(_ context.Context) ([]health.StreamMetrics, error) {
			return []health.StreamMetrics{
				{Name: "CHAINLOG_INGEST", Messages: 42, Bytes: 1024, Consumers: 1},
			}, nil
		},
		KVInfoFn: func(_ context.Context) ([]health.KVMetrics, error) {
			return []health.KVMetrics{
				{Name: "chainlog-audit", Keys: 120, Bytes: 2048},
			}, nil
		},
		ConsumerStatsFn: func(_ context.Context) (*health.ConsumerMetrics, error) {
			return &health.ConsumerMetrics{
				Total: 1,
				Consumers: []health.ConsumerDetail{
					{Name: "chainlog-appender", Pending: 3, AckPending: 1, Redelivered: 0},
				},
			}, nil
		},
		ChainStatsFn: func(_ context.Context) (*health.ChainMetrics, error) {
			return &health.ChainMetrics{TailSeq: 118, TailHash: "a1b2c3d4"}, nil
		},
		VerificationStatsFn: func(_ context.Context) (*health.VerificationMetrics, error) {
			return &health.VerificationMetrics{
				Valid:          true,
				FromSeq:        1,
				ToSeq:          118,
				EntriesChecked: 118,
				CheckedAt:      time.Now(),
			}, nil
		},
	}
}

func (s *HealthDetailedGetPublicTestSuite) TestGetHealthDetailed() {
	tests := []struct {
		name         string
		checker      health.Checker
		metrics      health.MetricsProvider
		wantCode     int
		validateFunc func(resp health.DetailedHealthResponse)
	}{
		{
			name: "all components healthy",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return nil },
				KVCheck:   func() error { return nil },
			},
			wantCode: http.StatusOK,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("ok", resp.Status)
				s.Equal("ok", resp.Components["nats"].Status)
				s.Equal("ok", resp.Components["kv"].Status)
				s.Equal("0.1.0", resp.Version)
				s.NotEmpty(resp.Uptime)
			},
		},
		{
			name: "NATS unhealthy returns 503",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return fmt.Errorf("nats not connected") },
				KVCheck:   func() error { return nil },
			},
			wantCode: http.StatusServiceUnavailable,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("degraded", resp.Status)
				s.Equal("error", resp.Components["nats"].Status)
				s.Contains(resp.Components["nats"].Error, "nats not connected")
				s.Equal("ok", resp.Components["kv"].Status)
			},
		},
		{
			name: "KV unhealthy returns 503",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return nil },
				KVCheck:   func() error { return fmt.Errorf("kv bucket not accessible") },
			},
			wantCode: http.StatusServiceUnavailable,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("degraded", resp.Status)
				s.Equal("ok", resp.Components["nats"].Status)
				s.Equal("error", resp.Components["kv"].Status)
				s.Contains(resp.Components["kv"].Error, "kv bucket not accessible")
			},
		},
		{
			name: "both unhealthy returns 503",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return fmt.Errorf("nats down") },
				KVCheck:   func() error { return fmt.Errorf("kv down") },
			},
			wantCode: http.StatusServiceUnavailable,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("degraded", resp.Status)
				s.Equal("error", resp.Components["nats"].Status)
				s.Equal("error", resp.Components["kv"].Status)
			},
		},
		{
			name:     "non-NATSChecker returns ok components",
			checker:  &stubChecker{},
			wantCode: http.StatusOK,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("ok", resp.Status)
				s.Equal("ok", resp.Components["nats"].Status)
				s.Equal("ok", resp.Components["kv"].Status)
			},
		},
		{
			name: "nil MetricsProvider omits metrics",
			checker: &health.NATSChecker{
				NATSCheck: func() error { return nil },
				KVCheck:   func() error { return nil },
			},
			metrics:  nil,
			wantCode: http.StatusOK,
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Nil(resp.NATS)
				s.Nil(resp.Streams)
				s.Nil(resp.KVBuckets)
				s.Nil(resp.Chain)
				s.Nil(resp.Verification)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			handler := health.New(slog.Default(), tt.checker, time.Now(), "0.1.0", tt.metrics)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			err := handler.GetHealthDetailed(ctx)

			s.NoError(err)
			s.Equal(tt.wantCode, rec.Code)

			var resp health.DetailedHealthResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.validateFunc(resp)
		})
	}
}

func (s *HealthDetailedGetPublicTestSuite) TestGetHealthDetailedMetrics() {
	tests := []struct {
		name         string
		metrics      health.MetricsProvider
		validateFunc func(resp health.DetailedHealthResponse)
	}{
		{
			name:    "successful metrics populated",
			metrics: s.healthyMetrics(),
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Require().NotNil(resp.NATS)
				s.Equal("nats://localhost:4222", resp.NATS.URL)
				s.Equal("2.10.0", resp.NATS.Version)

				s.Require().Len(resp.Streams, 1)
				s.Equal("CHAINLOG_INGEST", resp.Streams[0].Name)
				s.Equal(uint64(42), resp.Streams[0].Messages)

				s.Require().Len(resp.KVBuckets, 1)
				s.Equal("chainlog-audit", resp.KVBuckets[0].Name)
				s.Equal(120, resp.KVBuckets[0].Keys)

				s.Require().NotNil(resp.Consumers)
				s.Equal(1, resp.Consumers.Total)
				s.Require().Len(resp.Consumers.Consumers, 1)
				s.Equal("chainlog-appender", resp.Consumers.Consumers[0].Name)
				s.Equal(3, resp.Consumers.Consumers[0].Pending)
				s.Equal(1, resp.Consumers.Consumers[0].AckPending)

				s.Require().NotNil(resp.Chain)
				s.Equal(int64(118), resp.Chain.TailSeq)
				s.Equal("a1b2c3d4", resp.Chain.TailHash)

				s.Require().NotNil(resp.Verification)
				s.True(resp.Verification.Valid)
				s.Equal(118, resp.Verification.EntriesChecked)
				s.Nil(resp.Verification.FirstBreakSeq)
			},
		},
		{
			name: "tampered chain reported in verification stats",
			metrics: &health.ClosureMetricsProvider{
				NATSInfoFn: func(_ context.Context) (*health.NATSMetrics, error) {
					return &health.NATSMetrics{URL: "nats://localhost:4222", Version: "2.10.0"}, nil
				},
				StreamInfoFn: func(_ context.Context) ([]health.StreamMetrics, error) {
					return nil, nil
				},
				KVInfoFn: func(_ context.Context) ([]health.KVMetrics, error) {
					return nil, nil
				},
				ConsumerStatsFn: func(_ context.Context) (*health.ConsumerMetrics, error) {
					return &health.ConsumerMetrics{}, nil
				},
				ChainStatsFn: func(_ context.Context) (*health.ChainMetrics, error) {
					return &health.ChainMetrics{TailSeq: 50, TailHash: "dead"}, nil
				},
				VerificationStatsFn: func(_ context.Context) (*health.VerificationMetrics, error) {
					breakSeq := int64(17)
					return &health.VerificationMetrics{
						Valid:          false,
						FromSeq:        1,
						ToSeq:          50,
						EntriesChecked: 17,
						FirstBreakSeq:  &breakSeq,
						BreakKind:      "hash_mismatch",
						CheckedAt:      time.Now(),
					}, nil
				},
			},
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Require().NotNil(resp.Verification)
				s.False(resp.Verification.Valid)
				s.Require().NotNil(resp.Verification.FirstBreakSeq)
				s.Equal(int64(17), *resp.Verification.FirstBreakSeq)
				s.Equal("hash_mismatch", resp.Verification.BreakKind)
			},
		},
		{
			name: "partial metric failures degrade gracefully",
			metrics: &health.ClosureMetricsProvider{
				NATSInfoFn: func(_ context.Context) (*health.NATSMetrics, error) {
					return nil, fmt.Errorf("nats info unavailable")
				},
				StreamInfoFn: func(_ context.Context) ([]health.StreamMetrics, error) {
					return nil, fmt.Errorf("stream info unavailable")
				},
				KVInfoFn: func(_ context.Context) ([]health.KVMetrics, error) {
					return []health.KVMetrics{
						{Name: "chainlog-audit", Keys: 5, Bytes: 512},
					}, nil
				},
				ConsumerStatsFn: func(_ context.Context) (*health.ConsumerMetrics, error) {
					return nil, fmt.Errorf("consumer stats unavailable")
				},
				ChainStatsFn: func(_ context.Context) (*health.ChainMetrics, error) {
					return nil, fmt.Errorf("chain stats unavailable")
				},
				VerificationStatsFn: func(_ context.Context) (*health.VerificationMetrics, error) {
					return nil, fmt.Errorf("verification stats unavailable")
				},
			},
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("ok", resp.Status)
				s.Nil(resp.NATS)
				s.Nil(resp.Streams)
				s.Require().Len(resp.KVBuckets, 1)
				s.Nil(resp.Consumers)
				s.Nil(resp.Chain)
				s.Nil(resp.Verification)
			},
		},
		{
			name: "no completed sweep omits verification",
			metrics: &health.ClosureMetricsProvider{
				NATSInfoFn: func(_ context.Context) (*health.NATSMetrics, error) {
					return &health.NATSMetrics{URL: "nats://localhost:4222", Version: "2.10.0"}, nil
				},
				StreamInfoFn: func(_ context.Context) ([]health.StreamMetrics, error) {
					return nil, nil
				},
				KVInfoFn: func(_ context.Context) ([]health.KVMetrics, error) {
					return nil, nil
				},
				ConsumerStatsFn: func(_ context.Context) (*health.ConsumerMetrics, error) {
					return &health.ConsumerMetrics{}, nil
				},
				ChainStatsFn: func(_ context.Context) (*health.ChainMetrics, error) {
					return &health.ChainMetrics{}, nil
				},
				VerificationStatsFn: func(_ context.Context) (*health.VerificationMetrics, error) {
					return nil, nil
				},
			},
			validateFunc: func(resp health.DetailedHealthResponse) {
				s.Equal("ok", resp.Status)
				s.Nil(resp.Verification)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			checker := &health.NATSChecker{
				NATSCheck: func() error { return nil },
				KVCheck:   func() error { return nil },
			}
			handler := health.New(slog.Default(), checker, time.Now(), "0.1.0", tt.metrics)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
			rec := httptest.NewRecorder()
			ctx := e.NewContext(req, rec)

			err := handler.GetHealthDetailed(ctx)

			s.NoError(err)
			s.Equal(http.StatusOK, rec.Code)

			var resp health.DetailedHealthResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			tt.validateFunc(resp)
		})
	}
}

func (s *HealthDetailedGetPublicTestSuite) TestGetHealthDetailedRBACHTTP() {
	tokenManager := authtoken.New(s.logger)

	tests := []struct {
		name         string
		setupAuth    func(req *http.Request)
		wantCode     int
		wantContains []string
	}{
		{
			name: "when no token returns 401",
			setupAuth: func(_ *http.Request) {
				// No auth header set
			},
			wantCode:     http.StatusUnauthorized,
			wantContains: []string{"Bearer token required"},
		},
		{
			name: "when insufficient permissions returns 403",
			setupAuth: func(req *http.Request) {
				token, err := tokenManager.Generate(
					rbacHealthTestSigningKey,
					[]string{"read"},
					"test-user",
					[]string{"audit:read"},
				)
				s.Require().NoError(err)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
			},
			wantCode:     http.StatusForbidden,
			wantContains: []string{"Insufficient permissions"},
		},
		{
			name: "when valid token with health:read returns 200",
			setupAuth: func(req *http.Request) {
				token, err := tokenManager.Generate(
					rbacHealthTestSigningKey,
					[]string{"read"},
					"test-user",
					nil,
				)
				s.Require().NoError(err)
				req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
			},
			wantCode:     http.StatusOK,
			wantContains: []string{`"status":"ok"`, `"version"`, `"chain"`},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			checker := &health.NATSChecker{
				NATSCheck: func() error { return nil },
				KVCheck:   func() error { return nil },
			}
			healthHandler := health.New(
				s.logger,
				checker,
				time.Now(),
				"0.1.0",
				s.healthyMetrics(),
			)

			appConfig := config.Config{
				API: config.API{
					Server: config.Server{
						Security: config.ServerSecurity{
							SigningKey: rbacHealthTestSigningKey,
						},
					},
				},
			}

			server := api.New(appConfig, s.logger, api.WithHealthHandler(healthHandler))
			server.RegisterHandlers(server.CreateHandlers())

			req := httptest.NewRequest(http.MethodGet, "/health/detailed", nil)
			tc.setupAuth(req)
			rec := httptest.NewRecorder()

			server.Echo.ServeHTTP(rec, req)

			s.Equal(tc.wantCode, rec.Code)
			for _, want := range tc.wantContains {
				s.Contains(rec.Body.String(), want)
			}
		})
	}
}

func TestHealthDetailedGetPublicTestSuite(t *testing.T) {
	suite.Run(t, new(HealthDetailedGetPublicTestSuite))
}
