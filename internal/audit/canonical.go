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

package audit

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// canonicalVersion is the first byte of every canonical encoding.
const canonicalVersion byte = 1

// CanonicalEncode serializes the signed fields of an entry into a
// deterministic byte sequence: any two logically identical entries encode
// identically, and any field change changes the encoding. ContentHash and
// Signature are excluded, since they are computed over these bytes.
//
// Layout: a version byte, then each field in a fixed order. Strings and
// byte fields are length-prefixed (uint32 big endian) so contents can
// never be confused with separators; integers are fixed-width big endian;
// the timestamp is UTC nanoseconds since the epoch. Changes and Metadata
// pass through encoding/json, which sorts map keys, making the maps
// deterministic as well.
//
// The encoder expects already-redacted values. Redaction happens upstream
// in the append pipeline, never here.
func CanonicalEncode(
	e Entry,
) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(canonicalVersion)

	writeString(&buf, e.ID)
	writeInt64(&buf, e.Sequence)
	writeInt64(&buf, e.Timestamp.UTC().UnixNano())
	writeString(&buf, string(e.Action))
	writeString(&buf, e.ResourceType)
	writeString(&buf, e.ResourceID)
	writeString(&buf, e.ActorID)
	writeString(&buf, e.ActorEmail)
	writeString(&buf, e.OrgID)

	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return nil, fmt.Errorf("encode changes: %w", err)
	}
	writeBytes(&buf, changes)

	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	writeBytes(&buf, metadata)

	writeString(&buf, e.RequestID)
	writeString(&buf, e.Nonce)
	writeString(&buf, e.PreviousHash)
	writeString(&buf, e.KeyID)

	return buf.Bytes(), nil
}

// normalizeChanges rewrites the changes map through a JSON round-trip so
// the canonical bytes computed at sign time match a recomputation after
// the entry has been stored and reloaded (numbers decode as float64
// either way). Empty maps normalize to nil for the same reason: omitempty
// drops them from the stored record.
func normalizeChanges(
	in map[string]FieldChange,
) (map[string]FieldChange, error) {
	if len(in) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("normalize changes: %w", err)
	}

	var out map[string]FieldChange
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize changes: %w", err)
	}

	return out, nil
}

// normalizeMetadata is normalizeChanges for the free-form metadata map.
func normalizeMetadata(
	in map[string]any,
) (map[string]any, error) {
	if len(in) == 0 {
		return nil, nil
	}

	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("normalize metadata: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize metadata: %w", err)
	}

	return out, nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeBytes(buf, []byte(s))
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(b)))
	buf.Write(length[:])
	buf.Write(b)
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var be [8]byte
	binary.BigEndian.PutUint64(be[:], uint64(v))
	buf.Write(be[:])
}
