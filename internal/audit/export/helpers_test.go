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

package export_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/retr0h/chainlog/internal/audit"
)

// exportHarness produces fully signed, chained entries for format tests.
type exportHarness struct {
	signer *audit.Signer
}

func newExportHarness() *exportHarness {
	keyring, err := audit.NewKeyring("primary", map[string]string{
		"primary": "0123456789abcdef0123456789abcdef",
	})
	if err != nil {
		panic(err)
	}

	return &exportHarness{signer: audit.NewSigner(keyring)}
}

// appendEntries builds n chained entries starting at sequence 1.
func (h *exportHarness) appendEntries(
	n int,
) []audit.Entry {
	prev := audit.GenesisHash
	entries := make([]audit.Entry, 0, n)

	for i := 1; i <= n; i++ {
		entry := audit.Entry{
			ID:           uuid.NewString(),
			Sequence:     int64(i),
			Timestamp:    time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC).Add(time.Duration(i) * time.Second),
			Action:       audit.ActionUpdate,
			ResourceType: "document",
			ResourceID:   "doc-42",
			ActorID:      "usr-1",
			ActorEmail:   "us***om",
			Metadata:     map[string]any{"source_ip": "127.0.0.1"},
			Nonce:        fmt.Sprintf("%032x", i),
			PreviousHash: prev,
			KeyID:        "primary",
		}

		canonical, err := audit.CanonicalEncode(entry)
		if err != nil {
			panic(err)
		}
		entry.ContentHash, entry.Signature = h.signer.Sign(canonical)

		prev = entry.ContentHash
		entries = append(entries, entry)
	}

	return entries
}
