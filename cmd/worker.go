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
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// workerCmd represents the worker command.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "The worker subcommand",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Debug(
			"ingest worker configuration",
			slog.String("config_file", viper.ConfigFileUsed()),
			slog.Bool("debug", appConfig.Debug),
			slog.String("worker.nats.host", appConfig.Worker.NATS.Host),
			slog.Int("worker.nats.port", appConfig.Worker.NATS.Port),
			slog.String("worker.nats.client_name", appConfig.Worker.NATS.ClientName),
			slog.String("worker.nats.namespace", appConfig.Worker.NATS.Namespace),
			slog.String("worker.nats.auth.type", appConfig.Worker.NATS.Auth.Type),
			slog.Int("worker.max_inflight", appConfig.Worker.MaxInflight),
			slog.String("nats.ingest.consumer.name", appConfig.NATS.Ingest.Consumer.Name),
		)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	// Worker configuration flags
	workerCmd.PersistentFlags().
		StringP("worker-host", "", "localhost", "NATS server hostname for worker")
	workerCmd.PersistentFlags().
		IntP("worker-port", "", 4222, "NATS server port for worker")
	workerCmd.PersistentFlags().
		StringP("worker-client-name", "", "chainlog-worker", "NATS client name for worker")
	workerCmd.PersistentFlags().
		IntP("worker-max-inflight", "", 10, "Maximum concurrent appends per worker")

	// Consumer configuration flags
	workerCmd.PersistentFlags().
		IntP("consumer-max-deliver", "", 5, "Maximum delivery attempts before giving up")
	workerCmd.PersistentFlags().
		StringP("consumer-ack-wait", "", "2m", "Time to wait for acknowledgment before retry")
	workerCmd.PersistentFlags().
		IntP("consumer-max-ack-pending", "", 1000, "Maximum unacknowledged messages")
	workerCmd.PersistentFlags().
		StringSliceP("consumer-back-off", "", []string{"30s", "2m", "5m"}, "Retry backoff intervals")

	// Bind flags to viper config
	_ = viper.BindPFlag(
		"worker.nats.host",
		workerCmd.PersistentFlags().Lookup("worker-host"),
	)
	_ = viper.BindPFlag(
		"worker.nats.port",
		workerCmd.PersistentFlags().Lookup("worker-port"),
	)
	_ = viper.BindPFlag(
		"worker.nats.client_name",
		workerCmd.PersistentFlags().Lookup("worker-client-name"),
	)
	_ = viper.BindPFlag(
		"worker.max_inflight",
		workerCmd.PersistentFlags().Lookup("worker-max-inflight"),
	)
	_ = viper.BindPFlag(
		"nats.ingest.consumer.max_deliver",
		workerCmd.PersistentFlags().Lookup("consumer-max-deliver"),
	)
	_ = viper.BindPFlag(
		"nats.ingest.consumer.ack_wait",
		workerCmd.PersistentFlags().Lookup("consumer-ack-wait"),
	)
	_ = viper.BindPFlag(
		"nats.ingest.consumer.max_ack_pending",
		workerCmd.PersistentFlags().Lookup("consumer-max-ack-pending"),
	)
	_ = viper.BindPFlag(
		"nats.ingest.consumer.back_off",
		workerCmd.PersistentFlags().Lookup("consumer-back-off"),
	)
}
