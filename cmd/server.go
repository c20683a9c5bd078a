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

package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serverCmd represents the server command.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the API server",
	Long: `Manage the audit log API server. The server exposes the append, read,
verify, and export operations over HTTP and owns the chain stored in NATS.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Debug(
			"server configuration",
			slog.String("config_file", viper.ConfigFileUsed()),
			slog.Bool("debug", appConfig.Debug),
			slog.Int("api.server.port", appConfig.API.Port),
			slog.String("api.server.nats.host", appConfig.API.NATS.Host),
			slog.Int("api.server.nats.port", appConfig.API.NATS.Port),
			slog.String("api.server.nats.client_name", appConfig.API.NATS.ClientName),
			slog.String("api.server.nats.namespace", appConfig.API.NATS.Namespace),
			slog.String("api.server.nats.auth.type", appConfig.API.NATS.Auth.Type),
			slog.String("audit.signing.active_key_id", appConfig.Audit.Signing.ActiveKeyID),
			slog.String("audit.redaction.policy", appConfig.Audit.Redaction.Policy),
			slog.String("audit.verify_schedule", appConfig.Audit.VerifySchedule),
		)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server configuration flags
	serverCmd.PersistentFlags().
		IntP("server-port", "", 8080, "Port the API server listens on")
	serverCmd.PersistentFlags().
		StringP("server-nats-host", "", "localhost", "NATS server hostname for the API server")
	serverCmd.PersistentFlags().
		IntP("server-nats-port", "", 4222, "NATS server port for the API server")
	serverCmd.PersistentFlags().
		StringP("server-nats-client-name", "", "chainlog-api", "NATS client name for the API server")

	// Bind flags to viper config
	_ = viper.BindPFlag(
		"api.server.port",
		serverCmd.PersistentFlags().Lookup("server-port"),
	)
	_ = viper.BindPFlag(
		"api.server.nats.host",
		serverCmd.PersistentFlags().Lookup("server-nats-host"),
	)
	_ = viper.BindPFlag(
		"api.server.nats.port",
		serverCmd.PersistentFlags().Lookup("server-nats-port"),
	)
	_ = viper.BindPFlag(
		"api.server.nats.client_name",
		serverCmd.PersistentFlags().Lookup("server-nats-client-name"),
	)
}
