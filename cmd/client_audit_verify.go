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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/retr0h/chainlog/internal/cli"
	"github.com/retr0h/chainlog/internal/client"
)

// clientAuditVerifyCmd represents the clientAuditVerify command.
var clientAuditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the audit log hash chain",
	Long: `Verify the hash chain over a sequence range via the REST API.

Without --from and --to the whole chain is verified, from the genesis
entry to the tail. With --seq a single entry's hash and signature are
checked instead.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		auditHandler := handler.(client.AuditHandler)

		if cmd.Flags().Changed("seq") {
			seq, _ := cmd.Flags().GetInt64("seq")

			resp, err := auditHandler.GetAuditVerifyBySeq(ctx, seq)
			if err != nil {
				cli.LogFatal(logger, "failed to verify audit entry", err)
			}

			if jsonOutput {
				printJSON(resp)
				return
			}

			fmt.Println()
			cli.PrintKV(
				"Sequence", fmt.Sprintf("%d", resp.SequenceNumber),
				"ID", resp.ID,
				"Valid", strconv.FormatBool(resp.Valid),
			)
			return
		}

		from, _ := cmd.Flags().GetInt64("from")
		to, _ := cmd.Flags().GetInt64("to")

		report, err := auditHandler.GetAuditVerify(ctx, from, to)
		if err != nil {
			cli.LogFatal(logger, "failed to verify audit chain", err)
		}

		if jsonOutput {
			printJSON(report)
			return
		}

		displayVerificationReport(report)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditVerifyCmd)

	clientAuditVerifyCmd.PersistentFlags().
		Int64P("from", "", 0, "First sequence number to verify (default genesis)")
	clientAuditVerifyCmd.PersistentFlags().
		Int64P("to", "", 0, "Last sequence number to verify (default tail)")
	clientAuditVerifyCmd.PersistentFlags().
		Int64P("seq", "", 0, "Verify a single entry by sequence number")
}
