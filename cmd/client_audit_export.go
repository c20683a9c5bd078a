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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/audit/export"
	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/client"
)

// clientAuditExportCmd represents the clientAuditExport command.
var clientAuditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the audit log to a file",
	Long: `Export the full audit log to a file for long-term retention.

Entries are fetched in chain order, oldest first, so the dump can be
re-verified offline. Formats: jsonl, json, csv.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditHandler := handler.(client.AuditHandler)

		output, _ := cmd.Flags().GetString("output")
		formatName, _ := cmd.Flags().GetString("format")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			cli.LogFatal(logger, "unsupported export format", err)
		}

		resp, err := auditHandler.GetAuditExport(ctx)
		if err != nil {
			cli.LogFatal(logger, "failed to export audit entries", err)
		}

		// The export endpoint returns the whole chain in one response.
		// Serve it to the export engine page by page so writes are
		// batched and progress is reported at batch granularity.
		items := resp.Items
		fetcher := func(_ context.Context, limit int, offset int) ([]audit.Entry, int, error) {
			if offset >= len(items) {
				return nil, len(items), nil
			}
			end := offset + limit
			if end > len(items) {
				end = len(items)
			}
			return items[offset:end], len(items), nil
		}

		exporter := export.NewFileExporter(appFs, output, format)
		result, err := export.Run(ctx, logger, fetcher, exporter, batchSize,
			func(exported int, total int) {
				logger.Info(
					"export progress",
					slog.Int("exported", exported),
					slog.Int("total", total),
				)
			},
		)
		if err != nil {
			cli.LogFatal(logger, "failed to write export", err)
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Total", strconv.Itoa(result.TotalEntries),
		)
		cli.PrintKV("Output", output)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditExportCmd)

	clientAuditExportCmd.PersistentFlags().
		StringP("output", "", "", "Output file path")
	clientAuditExportCmd.PersistentFlags().
		StringP("format", "", "jsonl", "Output format (jsonl, json, csv)")
	clientAuditExportCmd.PersistentFlags().
		IntP("batch-size", "", 500, "Entries written per progress report")

	_ = clientAuditExportCmd.MarkPersistentFlagRequired("output")
}
