// Copyright (c) 2024 John Dewey

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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go/jetstream"
	natsclient "github.com/osapi-io/nats-client/pkg/client"

	"github.com/retr0h/chainlog/internal/api"
	auditapi "github.com/retr0h/chainlog/internal/api/audit"
	"github.com/retr0h/chainlog/internal/api/health"
	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/config"
	"github.com/retr0h/chainlog/internal/ingest"
	ingestclient "github.com/retr0h/chainlog/internal/ingest/client"
	"github.com/retr0h/chainlog/internal/messaging"
)

// ServerManager responsible for Server operations.
type ServerManager interface {
	cli.Lifecycle
	// CreateHandlers assembles route registrations for the configured handlers.
	CreateHandlers() []func(e *echo.Echo)
	// GetMetricsHandler returns Prometheus metrics handler for registration.
	GetMetricsHandler(metricsHandler http.Handler, path string) []func(e *echo.Echo)
	// RegisterHandlers registers a list of handlers with the Echo instance.
	RegisterHandlers(handlers []func(e *echo.Echo))
}

// natsBundle holds the NATS connection and audit chain handles created
// by connectNATSBundle.
type natsBundle struct {
	nc      messaging.NATSClient
	auditKV jetstream.KeyValue
	sweeper *audit.Sweeper
}

// auditPipeline bundles the chain components built from the audit
// configuration.
type auditPipeline struct {
	store    audit.Store
	appender *audit.Appender
	verifier *audit.Verifier
}

// setupAPIServer connects to NATS, creates the API server with all handlers,
// and returns the server manager and NATS bundle. It is used by the standalone
// API server start and combined start commands.
func setupAPIServer(
	ctx context.Context,
	log *slog.Logger,
	connCfg config.NATSConnection,
	metricsHandler http.Handler,
	metricsPath string,
) (ServerManager, *natsBundle) {
	namespace := connCfg.Namespace
	streamName := ingest.ApplyNamespaceToInfraName(namespace, appConfig.NATS.Ingest.Stream)

	b := connectNATSBundle(ctx, log, connCfg, namespace)

	pipeline := buildAuditPipeline(log, b.auditKV)
	publisher := ingestclient.New(log, b.nc)

	if appConfig.Audit.VerifySchedule != "" {
		sweeper, err := audit.NewSweeper(log, pipeline.verifier, appConfig.Audit.VerifySchedule)
		if err != nil {
			cli.LogFatal(log, "failed to create verification sweeper", err)
		}
		b.sweeper = sweeper
	}

	checker := newHealthChecker(b.nc, b.auditKV)
	metricsProvider := newMetricsProvider(b.nc, b.auditKV, streamName, pipeline.store, b.sweeper)

	auditHandler := auditapi.New(log, pipeline.store, pipeline.appender, pipeline.verifier, publisher)
	healthHandler := health.New(log, checker, time.Now(), "0.1.0", metricsProvider)

	sm := api.New(
		appConfig,
		log,
		api.WithAuditHandler(auditHandler),
		api.WithHealthHandler(healthHandler),
	)
	registerAPIHandlers(sm, metricsHandler, metricsPath)

	return sm, b
}

func connectNATSBundle(
	ctx context.Context,
	log *slog.Logger,
	connCfg config.NATSConnection,
	namespace string,
) *natsBundle {
	var nc messaging.NATSClient = natsclient.New(log, &natsclient.Options{
		Host: connCfg.Host,
		Port: connCfg.Port,
		Auth: cli.BuildNATSAuthOptions(connCfg.Auth),
		Name: connCfg.ClientName,
	})

	if err := nc.Connect(); err != nil {
		cli.LogFatal(log, "failed to connect to NATS", err)
	}

	auditKVConfig := cli.BuildAuditKVConfig(namespace, appConfig.NATS.Audit)
	auditKV, err := nc.CreateOrUpdateKVBucketWithConfig(ctx, auditKVConfig)
	if err != nil {
		cli.LogFatal(log, "failed to create audit KV bucket", err)
	}

	return &natsBundle{
		nc:      nc,
		auditKV: auditKV,
	}
}

// buildAuditPipeline assembles the store, appender, and verifier from the
// audit configuration. Shared by the API server and the ingest worker so
// both sides sign and verify identically.
func buildAuditPipeline(
	log *slog.Logger,
	auditKV jetstream.KeyValue,
) *auditPipeline {
	keyring, err := audit.NewKeyring(
		appConfig.Audit.Signing.ActiveKeyID,
		appConfig.Audit.Signing.Keys,
	)
	if err != nil {
		cli.LogFatal(log, "failed to load signing keys", err)
	}

	signer := audit.NewSigner(keyring)
	redactor := audit.NewRedactor(
		audit.Policy(appConfig.Audit.Redaction.Policy),
		appConfig.Audit.Redaction.Fields,
	)
	store := audit.NewKVStore(log, auditKV)

	appenderOpts := []audit.AppenderOption{
		audit.WithRetryAttempts(appConfig.Audit.Retry.Attempts),
	}
	if backoff, parseErr := time.ParseDuration(appConfig.Audit.Retry.BaseBackoff); parseErr == nil {
		appenderOpts = append(appenderOpts, audit.WithRetryBackoff(backoff))
	}

	return &auditPipeline{
		store:    store,
		appender: audit.NewAppender(log, store, signer, redactor, appenderOpts...),
		verifier: audit.NewVerifier(log, store, signer),
	}
}

func newHealthChecker(
	nc messaging.NATSClient,
	auditKV jetstream.KeyValue,
) *health.NATSChecker {
	return &health.NATSChecker{
		NATSCheck: func() error {
			natsConn, ok := nc.(*natsclient.Client)
			if !ok || natsConn.NC == nil {
				return fmt.Errorf("nats client unavailable")
			}

			if natsConn.NC.ConnectedUrl() == "" {
				return fmt.Errorf("nats not connected")
			}

			return nil
		},
		KVCheck: func() error {
			_, err := auditKV.Status(context.Background())
			if err != nil {
				return fmt.Errorf("kv bucket not accessible: %w", err)
			}

			return nil
		},
	}
}

func newMetricsProvider(
	nc messaging.NATSClient,
	auditKV jetstream.KeyValue,
	streamName string,
	store audit.Store,
	sweeper *audit.Sweeper,
) *health.ClosureMetricsProvider {
	return &health.ClosureMetricsProvider{
		NATSInfoFn: func(_ context.Context) (*health.NATSMetrics, error) {
			natsConn, ok := nc.(*natsclient.Client)
			if !ok || natsConn.NC == nil {
				return nil, fmt.Errorf("NATS client unavailable")
			}

			metrics := &health.NATSMetrics{
				URL: natsConn.NC.ConnectedUrl(),
			}

			if wrapper, ok := natsConn.NC.(*natsclient.NATSConnWrapper); ok &&
				wrapper.Conn != nil {
				metrics.Version = wrapper.Conn.ConnectedServerVersion()
			}

			return metrics, nil
		},
		StreamInfoFn: func(fnCtx context.Context) ([]health.StreamMetrics, error) {
			info, err := nc.GetStreamInfo(fnCtx, streamName)
			if err != nil {
				return nil, fmt.Errorf("stream info: %w", err)
			}

			return []health.StreamMetrics{
				{
					Name:      streamName,
					Messages:  info.State.Msgs,
					Bytes:     info.State.Bytes,
					Consumers: info.State.Consumers,
				},
			}, nil
		},
		KVInfoFn: func(fnCtx context.Context) ([]health.KVMetrics, error) {
			if auditKV == nil {
				return nil, nil
			}

			status, err := auditKV.Status(fnCtx)
			if err != nil {
				return nil, fmt.Errorf("kv status: %w", err)
			}

			return []health.KVMetrics{
				{
					Name:  status.Bucket(),
					Keys:  int(status.Values()),
					Bytes: status.Bytes(),
				},
			}, nil
		},
		ConsumerStatsFn: func(fnCtx context.Context) (*health.ConsumerMetrics, error) {
			natsConn, ok := nc.(*natsclient.Client)
			if !ok || natsConn.ExtJS == nil {
				return nil, fmt.Errorf("jetstream client unavailable")
			}

			stream, err := natsConn.ExtJS.Stream(fnCtx, streamName)
			if err != nil {
				return nil, fmt.Errorf("stream: %w", err)
			}

			var details []health.ConsumerDetail
			lister := stream.ListConsumers(fnCtx)
			for ci := range lister.Info() {
				details = append(details, health.ConsumerDetail{
					Name:        ci.Name,
					Pending:     int(ci.NumPending),
					AckPending:  ci.NumAckPending,
					Redelivered: ci.NumRedelivered,
				})
			}
			if lister.Err() != nil {
				return nil, fmt.Errorf("list consumers: %w", lister.Err())
			}

			return &health.ConsumerMetrics{
				Total:     len(details),
				Consumers: details,
			}, nil
		},
		ChainStatsFn: func(fnCtx context.Context) (*health.ChainMetrics, error) {
			tailSeq, tailHash, err := store.Tail(fnCtx)
			if err != nil {
				return nil, fmt.Errorf("chain tail: %w", err)
			}

			return &health.ChainMetrics{
				TailSeq:  tailSeq,
				TailHash: tailHash,
			}, nil
		},
		VerificationStatsFn: func(_ context.Context) (*health.VerificationMetrics, error) {
			// Nothing to report before the first sweep, or with the
			// sweeper disabled. Not an error either way.
			if sweeper == nil {
				return nil, nil
			}

			report := sweeper.LastReport()
			if report == nil {
				return nil, nil
			}

			return &health.VerificationMetrics{
				Valid:          report.Valid,
				FromSeq:        report.FromSeq,
				ToSeq:          report.ToSeq,
				EntriesChecked: report.EntriesChecked,
				FirstBreakSeq:  report.FirstBreakSeq,
				BreakKind:      string(report.BreakKind),
				CheckedAt:      report.CheckedAt,
			}, nil
		},
	}
}

func registerAPIHandlers(
	sm ServerManager,
	metricsHandler http.Handler,
	metricsPath string,
) {
	handlers := sm.CreateHandlers()
	handlers = append(handlers, sm.GetMetricsHandler(metricsHandler, metricsPath)...)

	sm.RegisterHandlers(handlers)
}
