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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/client"
)

// clientAuditListCmd represents the clientAuditList command.
var clientAuditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit log entries",
	Long: `List audit log entries, newest first, with filters and pagination.

Filters combine with AND semantics. Since and until accept RFC 3339
timestamps.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditHandler := handler.(client.AuditHandler)

		params := client.GetAuditLogsParams{}
		if cmd.Flags().Changed("limit") {
			limit, _ := cmd.Flags().GetInt("limit")
			params.Limit = &limit
		}
		if cmd.Flags().Changed("offset") {
			offset, _ := cmd.Flags().GetInt("offset")
			params.Offset = &offset
		}
		params.ActorID, _ = cmd.Flags().GetString("actor-id")
		params.OrgID, _ = cmd.Flags().GetString("org-id")
		params.Action, _ = cmd.Flags().GetString("action")
		params.ResourceType, _ = cmd.Flags().GetString("resource-type")
		params.Since, _ = cmd.Flags().GetString("since")
		params.Until, _ = cmd.Flags().GetString("until")

		resp, err := auditHandler.GetAuditLogs(ctx, params)
		if err != nil {
			cli.LogFatal(logger, "failed to get audit logs", err)
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		if len(resp.Items) == 0 {
			fmt.Println()
			fmt.Println("  No audit entries found.")
			return
		}

		displayAuditEntries(resp.Items, resp.TotalItems)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditListCmd)

	clientAuditListCmd.PersistentFlags().
		IntP("limit", "", 20, "Maximum number of entries to return")
	clientAuditListCmd.PersistentFlags().
		IntP("offset", "", 0, "Number of entries to skip")
	clientAuditListCmd.PersistentFlags().
		StringP("actor-id", "", "", "Only entries performed by this actor")
	clientAuditListCmd.PersistentFlags().
		StringP("org-id", "", "", "Only entries scoped to this org")
	clientAuditListCmd.PersistentFlags().
		StringP("action", "", "", "Only entries recording this action")
	clientAuditListCmd.PersistentFlags().
		StringP("resource-type", "", "", "Only entries affecting this resource type")
	clientAuditListCmd.PersistentFlags().
		StringP("since", "", "", "Only entries at or after this RFC 3339 timestamp")
	clientAuditListCmd.PersistentFlags().
		StringP("until", "", "", "Only entries at or before this RFC 3339 timestamp")
}
