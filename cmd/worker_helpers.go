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
	"log/slog"

	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/config"
	"github.com/retr0h/chainlog/internal/ingest"
	"github.com/retr0h/chainlog/internal/ingest/worker"
)

// setupIngestWorker connects to NATS, ensures the ingest stream and durable
// consumer exist, and builds the worker Lifecycle. It is used by the
// standalone worker start and combined start commands.
func setupIngestWorker(
	ctx context.Context,
	log *slog.Logger,
	connCfg config.NATSConnection,
) (cli.Lifecycle, *natsBundle) {
	namespace := connCfg.Namespace
	streamName := ingest.ApplyNamespaceToInfraName(namespace, appConfig.NATS.Ingest.Stream)

	b := connectNATSBundle(ctx, log, connCfg, namespace)

	streamCfg := ingest.GetIngestStreamConfig(streamName, &appConfig.NATS.Ingest)
	consumerCfg := ingest.GetIngestConsumerConfig(
		&appConfig.NATS.Ingest.Consumer,
		ingest.BuildEntrySubject(),
	)
	if err := b.nc.CreateOrUpdateJetStreamWithConfig(ctx, streamCfg, consumerCfg); err != nil {
		cli.LogFatal(log, "failed to create ingest stream", err)
	}

	pipeline := buildAuditPipeline(log, b.auditKV)

	w := worker.New(appConfig, log, b.nc, pipeline.appender, streamName)

	return w, b
}
