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

package export

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/retr0h/chainlog/internal/audit"
)

// Format selects the file layout of an export.
type Format string

const (
	// FormatJSONL writes one JSON object per line.
	FormatJSONL Format = "jsonl"
	// FormatJSON writes a single JSON array.
	FormatJSON Format = "json"
	// FormatCSV writes a header row plus one record per entry; the
	// changes and metadata maps are embedded as JSON strings.
	FormatCSV Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(
	s string,
) (Format, error) {
	switch Format(s) {
	case FormatJSONL, FormatJSON, FormatCSV:
		return Format(s), nil
	}

	return "", fmt.Errorf("unsupported export format %q", s)
}

// csvHeader lists the exported columns in order.
var csvHeader = []string{
	"sequence_number",
	"id",
	"timestamp",
	"action",
	"resource_type",
	"resource_id",
	"actor_id",
	"actor_email",
	"org_id",
	"changes",
	"metadata",
	"request_id",
	"nonce",
	"previous_hash",
	"content_hash",
	"signature",
	"key_id",
}

// ensure FileExporter implements Exporter at compile time.
var _ Exporter = (*FileExporter)(nil)

// FileExporter writes audit entries to a file on the given filesystem.
type FileExporter struct {
	Path   string
	Format Format

	fs      afero.Fs
	file    afero.File
	writer  *bufio.Writer
	csv     *csv.Writer
	written int
}

// NewFileExporter creates a FileExporter for the given path and format.
func NewFileExporter(
	fs afero.Fs,
	path string,
	format Format,
) *FileExporter {
	return &FileExporter{
		Path:   path,
		Format: format,
		fs:     fs,
	}
}

// Open creates the output file and prepares for writing.
func (e *FileExporter) Open(
	_ context.Context,
) error {
	f, err := e.fs.Create(e.Path)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}

	e.file = f
	e.writer = bufio.NewWriter(f)
	e.written = 0

	switch e.Format {
	case FormatJSON:
		if _, err := e.writer.WriteString("[\n"); err != nil {
			return fmt.Errorf("writing array start: %w", err)
		}
	case FormatCSV:
		e.csv = csv.NewWriter(e.writer)
		if err := e.csv.Write(csvHeader); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}

	return nil
}

// Write emits a single audit entry in the configured format.
func (e *FileExporter) Write(
	_ context.Context,
	entry audit.Entry,
) error {
	if e.writer == nil {
		return fmt.Errorf("exporter not opened")
	}

	switch e.Format {
	case FormatCSV:
		if err := e.writeCSV(entry); err != nil {
			return err
		}
	case FormatJSON:
		if err := e.writeJSONElement(entry); err != nil {
			return err
		}
	default:
		if err := e.writeJSONLine(entry); err != nil {
			return err
		}
	}

	e.written++

	return nil
}

// Close flushes buffers, finalizes the format, and closes the file.
func (e *FileExporter) Close(
	_ context.Context,
) error {
	if e.writer == nil {
		return fmt.Errorf("exporter not opened")
	}

	if e.csv != nil {
		e.csv.Flush()
		if err := e.csv.Error(); err != nil {
			return fmt.Errorf("flushing csv: %w", err)
		}
	}

	if e.Format == FormatJSON {
		if _, err := e.writer.WriteString("\n]\n"); err != nil {
			return fmt.Errorf("writing array end: %w", err)
		}
	}

	if err := e.writer.Flush(); err != nil {
		return fmt.Errorf("flushing writer: %w", err)
	}

	if err := e.file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	return nil
}

func (e *FileExporter) writeJSONLine(
	entry audit.Entry,
) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	if _, err := e.writer.Write(data); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}

	if err := e.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

func (e *FileExporter) writeJSONElement(
	entry audit.Entry,
) error {
	if e.written > 0 {
		if _, err := e.writer.WriteString(",\n"); err != nil {
			return fmt.Errorf("writing separator: %w", err)
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	if _, err := e.writer.Write(data); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}

	return nil
}

func (e *FileExporter) writeCSV(
	entry audit.Entry,
) error {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("marshaling changes: %w", err)
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	record := []string{
		strconv.FormatInt(entry.Sequence, 10),
		entry.ID,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		string(entry.Action),
		entry.ResourceType,
		entry.ResourceID,
		entry.ActorID,
		entry.ActorEmail,
		entry.OrgID,
		string(changes),
		string(metadata),
		entry.RequestID,
		entry.Nonce,
		entry.PreviousHash,
		entry.ContentHash,
		entry.Signature,
		entry.KeyID,
	}

	if err := e.csv.Write(record); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}

	return nil
}
