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
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/client"
)

// clientAuditAppendCmd represents the clientAuditAppend command.
var clientAuditAppendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append an audit log entry",
	Long: `Append a new entry to the tamper-evident audit log via the REST API.

With --async the entry is queued for asynchronous ingestion and the
command prints the request id to correlate the committed entry later.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditHandler := handler.(client.AuditHandler)

		action, _ := cmd.Flags().GetString("action")
		resourceType, _ := cmd.Flags().GetString("resource-type")
		resourceID, _ := cmd.Flags().GetString("resource-id")
		actorID, _ := cmd.Flags().GetString("actor-id")
		actorEmail, _ := cmd.Flags().GetString("actor-email")
		orgID, _ := cmd.Flags().GetString("org-id")
		requestID, _ := cmd.Flags().GetString("request-id")
		changesJSON, _ := cmd.Flags().GetString("changes")
		metadata, _ := cmd.Flags().GetStringToString("metadata")
		async, _ := cmd.Flags().GetBool("async")

		input := audit.Input{
			Action:       audit.Action(action),
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ActorID:      actorID,
			ActorEmail:   actorEmail,
			OrgID:        orgID,
			RequestID:    requestID,
		}

		if changesJSON != "" {
			if err := json.Unmarshal([]byte(changesJSON), &input.Changes); err != nil {
				cli.LogFatal(logger, "failed to parse changes", err)
			}
		}

		if len(metadata) > 0 {
			input.Metadata = make(map[string]any, len(metadata))
			for k, v := range metadata {
				input.Metadata[k] = v
			}
		}

		if async {
			resp, err := auditHandler.PostAuditLogAsync(ctx, input)
			if err != nil {
				cli.LogFatal(logger, "failed to enqueue audit entry", err)
			}

			if jsonOutput {
				printJSON(resp)
				return
			}

			fmt.Println()
			cli.PrintKV(
				"Request ID", resp.RequestID,
				"Enqueued At", resp.EnqueuedAt.UTC().Format(time.RFC3339),
			)
			return
		}

		entry, err := auditHandler.PostAuditLog(ctx, input)
		if err != nil {
			cli.LogFatal(logger, "failed to append audit entry", err)
		}

		if jsonOutput {
			printJSON(entry)
			return
		}

		displayAuditEntry(entry)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditAppendCmd)

	clientAuditAppendCmd.PersistentFlags().
		StringP("action", "", "", "Action being recorded (e.g. create, update, login)")
	clientAuditAppendCmd.PersistentFlags().
		StringP("resource-type", "", "", "Kind of entity affected (e.g. user)")
	clientAuditAppendCmd.PersistentFlags().
		StringP("resource-id", "", "", "Identifier of the affected entity")
	clientAuditAppendCmd.PersistentFlags().
		StringP("actor-id", "", "", "Who performed the action")
	clientAuditAppendCmd.PersistentFlags().
		StringP("actor-email", "", "", "Actor email, redacted per server policy")
	clientAuditAppendCmd.PersistentFlags().
		StringP("org-id", "", "", "Tenant scope, empty for platform-level events")
	clientAuditAppendCmd.PersistentFlags().
		StringP("request-id", "", "", "Correlation id for the originating request")
	clientAuditAppendCmd.PersistentFlags().
		StringP("changes", "", "", `Field changes as JSON (e.g. '{"plan":{"old":"free","new":"pro"}}')`)
	clientAuditAppendCmd.PersistentFlags().
		StringToStringP("metadata", "", nil, "Metadata as key=value pairs")
	clientAuditAppendCmd.PersistentFlags().
		BoolP("async", "", false, "Queue the entry instead of waiting for the commit")

	_ = clientAuditAppendCmd.MarkPersistentFlagRequired("action")
	_ = clientAuditAppendCmd.MarkPersistentFlagRequired("resource-type")
	_ = clientAuditAppendCmd.MarkPersistentFlagRequired("resource-id")
	_ = clientAuditAppendCmd.MarkPersistentFlagRequired("actor-id")
}
