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
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/retr0h/chainlog/internal/api/health"
	"github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/cli"
)

// printJSON writes v as indented JSON for --json output.
func printJSON(
	v any,
) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		cli.LogFatal(logger, "failed to encode json", err)
	}
	fmt.Println(string(out))
}

// shortHashLen is how many hex characters of a digest appear in table cells.
const shortHashLen = 12

// shortHash truncates a hex digest for table display. Full digests are
// available from the get subcommand or --json output.
func shortHash(
	h string,
) string {
	if len(h) <= shortHashLen {
		return h
	}
	return h[:shortHashLen]
}

// buildAuditRows builds compact table rows for a list of audit entries.
func buildAuditRows(
	items []audit.Entry,
) [][]string {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Sequence),
			e.Timestamp.UTC().Format(time.RFC3339),
			string(e.Action),
			e.ResourceType + "/" + e.ResourceID,
			e.ActorID,
			shortHash(e.ContentHash),
		})
	}

	return rows
}

// displayAuditEntries renders entries as a compact table with the total count.
func displayAuditEntries(
	items []audit.Entry,
	totalItems int,
) {
	cli.PrintCompactTable([]cli.Section{
		{
			Title:   "Audit Log",
			Headers: []string{"SEQ", "TIMESTAMP", "ACTION", "RESOURCE", "ACTOR", "HASH"},
			Rows:    buildAuditRows(items),
		},
	})

	fmt.Println()
	cli.PrintKV("Showing", fmt.Sprintf("%d", len(items)), "Total", fmt.Sprintf("%d", totalItems))
}

// formatChangeValue stringifies a before or after value. Creates carry a
// nil old value for every field, rendered as an empty cell.
func formatChangeValue(
	v any,
) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// formatChangeRows converts a field-change map into FIELD/OLD/NEW rows
// sorted by field name.
func formatChangeRows(
	changes map[string]audit.FieldChange,
) [][]string {
	fields := make([]string, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		change := changes[field]
		rows = append(rows, []string{
			field,
			formatChangeValue(change.Old),
			formatChangeValue(change.New),
		})
	}

	return rows
}

// stringifyMetadata flattens free-form metadata values for display.
func stringifyMetadata(
	metadata map[string]any,
) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

// displayAuditEntry renders a single audit entry with its chain fields.
func displayAuditEntry(
	entry *audit.Entry,
) {
	actor := entry.ActorID
	if entry.ActorEmail != "" {
		actor = fmt.Sprintf("%s <%s>", entry.ActorID, entry.ActorEmail)
	}

	fmt.Println()
	cli.PrintKV("Sequence", fmt.Sprintf("%d", entry.Sequence), "ID", entry.ID)
	cli.PrintKV(
		"Timestamp", entry.Timestamp.UTC().Format(time.RFC3339),
		"Action", string(entry.Action),
	)
	cli.PrintKV("Resource", entry.ResourceType+"/"+entry.ResourceID, "Actor", actor)
	if entry.OrgID != "" {
		cli.PrintKV("Org", entry.OrgID)
	}
	if entry.RequestID != "" {
		cli.PrintKV("Request ID", entry.RequestID)
	}
	if len(entry.Metadata) > 0 {
		cli.PrintKV("Metadata", cli.FormatMetadata(stringifyMetadata(entry.Metadata)))
	}

	if len(entry.Changes) > 0 {
		cli.PrintCompactTable([]cli.Section{
			{
				Title:   "Changes",
				Headers: []string{"FIELD", "OLD", "NEW"},
				Rows:    formatChangeRows(entry.Changes),
			},
		})
	}

	fmt.Println()
	cli.PrintKV("Previous Hash", entry.PreviousHash)
	cli.PrintKV("Content Hash", entry.ContentHash)
	cli.PrintKV("Signature", entry.Signature)
	cli.PrintKV("Key ID", entry.KeyID)
}

// displayVerificationReport renders a chain verification report.
func displayVerificationReport(
	report *audit.VerificationReport,
) {
	status := "valid"
	if !report.Valid {
		status = "BROKEN"
	}

	fmt.Println()
	cli.PrintKV("Chain", status)
	cli.PrintKV(
		"Range", fmt.Sprintf("%d-%d", report.FromSeq, report.ToSeq),
		"Entries Checked", fmt.Sprintf("%d", report.EntriesChecked),
	)
	cli.PrintKV("Checked At", report.CheckedAt.UTC().Format(time.RFC3339))

	if report.FirstBreakSeq == nil {
		return
	}

	fmt.Println()
	cli.PrintKV(
		"First Break", fmt.Sprintf("%d", *report.FirstBreakSeq),
		"Kind", string(report.BreakKind),
	)
	if report.ExpectedHash != "" {
		cli.PrintKV("Expected Hash", report.ExpectedHash)
		cli.PrintKV("Actual Hash", report.ActualHash)
	}
}

// displayDetailedHealth renders detailed health check output.
func displayDetailedHealth(
	data *health.DetailedHealthResponse,
) {
	fmt.Println()
	cli.PrintKV("Status", data.Status, "Version", data.Version, "Uptime", data.Uptime)

	names := make([]string, 0, len(data.Components))
	for name := range data.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	componentRows := make([][]string, 0, len(names))
	for _, name := range names {
		component := data.Components[name]
		componentRows = append(componentRows, []string{name, component.Status, component.Error})
	}

	sections := []cli.Section{
		{
			Title:   "Components",
			Headers: []string{"COMPONENT", "STATUS", "ERROR"},
			Rows:    componentRows,
		},
	}

	if data.NATS != nil {
		sections = append(sections, cli.Section{
			Title:   "NATS",
			Headers: []string{"URL", "VERSION"},
			Rows:    [][]string{{data.NATS.URL, data.NATS.Version}},
		})
	}

	if len(data.Streams) > 0 {
		streamRows := make([][]string, 0, len(data.Streams))
		for _, s := range data.Streams {
			streamRows = append(streamRows, []string{
				s.Name,
				fmt.Sprintf("%d", s.Messages),
				cli.FormatBytes(int(s.Bytes)),
				fmt.Sprintf("%d", s.Consumers),
			})
		}
		sections = append(sections, cli.Section{
			Title:   "Streams",
			Headers: []string{"NAME", "MESSAGES", "BYTES", "CONSUMERS"},
			Rows:    streamRows,
		})
	}

	if len(data.KVBuckets) > 0 {
		bucketRows := make([][]string, 0, len(data.KVBuckets))
		for _, b := range data.KVBuckets {
			bucketRows = append(bucketRows, []string{
				b.Name,
				fmt.Sprintf("%d", b.Keys),
				cli.FormatBytes(int(b.Bytes)),
			})
		}
		sections = append(sections, cli.Section{
			Title:   "KV Buckets",
			Headers: []string{"NAME", "KEYS", "BYTES"},
			Rows:    bucketRows,
		})
	}

	if data.Consumers != nil && len(data.Consumers.Consumers) > 0 {
		consumerRows := make([][]string, 0, len(data.Consumers.Consumers))
		for _, c := range data.Consumers.Consumers {
			consumerRows = append(consumerRows, []string{
				c.Name,
				fmt.Sprintf("%d", c.Pending),
				fmt.Sprintf("%d", c.AckPending),
				fmt.Sprintf("%d", c.Redelivered),
			})
		}
		sections = append(sections, cli.Section{
			Title:   "Consumers",
			Headers: []string{"NAME", "PENDING", "ACK PENDING", "REDELIVERED"},
			Rows:    consumerRows,
		})
	}

	cli.PrintCompactTable(sections)

	if data.Chain != nil {
		fmt.Println()
		cli.PrintKV(
			"Tail Seq", fmt.Sprintf("%d", data.Chain.TailSeq),
			"Tail Hash", shortHash(data.Chain.TailHash),
		)
	}

	if data.Verification != nil {
		v := data.Verification
		sweep := "valid"
		if !v.Valid {
			sweep = "BROKEN"
		}
		cli.PrintKV(
			"Last Sweep", sweep,
			"Range", fmt.Sprintf("%d-%d", v.FromSeq, v.ToSeq),
			"Checked At", v.CheckedAt.UTC().Format(time.RFC3339),
		)
		if v.FirstBreakSeq != nil {
			cli.PrintKV(
				"First Break", fmt.Sprintf("%d", *v.FirstBreakSeq),
				"Kind", v.BreakKind,
			)
		}
	}
}
