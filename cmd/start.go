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

	"github.com/spf13/cobra"

	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/ingest"
	"github.com/retr0h/chainlog/internal/telemetry"
)

// startCmd represents the top-level start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start all components (NATS, API server, worker)",
	Long: `Start the embedded NATS server, API server, and ingest worker in a
single process.

This is the recommended way to run chainlog on a single host. Components
start in dependency order and shut down gracefully on SIGINT/SIGTERM.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		shutdownTracer, err := telemetry.InitTracer(
			ctx,
			"chainlog",
			appConfig.Telemetry.Tracing,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize tracer", err)
		}

		metricsHandler, metricsPath, shutdownMeter, err := telemetry.InitMeter(
			appConfig.Telemetry.Metrics,
		)
		if err != nil {
			cli.LogFatal(logger, "failed to initialize meter", err)
		}

		ingest.Init(appConfig.NATS.Server.Namespace)

		natsServer := setupNATSServer(ctx, logger.With("component", "nats"))
		sm, apiBundle := setupAPIServer(
			ctx, logger.With("component", "api"),
			appConfig.API.NATS, metricsHandler, metricsPath,
		)
		w, workerBundle := setupIngestWorker(
			ctx, logger.With("component", "worker"), appConfig.Worker.NATS,
		)

		// Stop order is the reverse of this: worker drains before the API
		// server, and NATS goes down last.
		members := []cli.Lifecycle{
			&natsLifecycle{server: natsServer},
			sm,
		}
		if apiBundle.sweeper != nil {
			members = append(members, apiBundle.sweeper)
		}
		members = append(members, w)

		composite := cli.NewComposite(members...)
		composite.Start()
		cli.RunServer(ctx, composite, func() {
			_ = shutdownMeter(context.Background())
			_ = shutdownTracer(context.Background())
			cli.CloseNATSClient(workerBundle.nc)
			cli.CloseNATSClient(apiBundle.nc)
		})
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
