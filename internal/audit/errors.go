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

import "errors"

var (
	// ErrAllocationConflict means a concurrent writer committed the
	// sequence number this append was building on. Transient: the append
	// pipeline retries the whole append with a fresh allocation.
	ErrAllocationConflict = errors.New("audit: sequence allocation conflict")

	// ErrPersistenceFailure means the durable write failed for a reason
	// other than an allocation conflict.
	ErrPersistenceFailure = errors.New("audit: persistence failure")

	// ErrSigningKeyMissing means no usable signing key is configured.
	// Fatal at startup: the process must refuse to run rather than
	// append unsigned entries.
	ErrSigningKeyMissing = errors.New("audit: signing key missing")

	// ErrEntryNotFound means the requested sequence number or entry ID
	// has no committed entry.
	ErrEntryNotFound = errors.New("audit: entry not found")

	// ErrUnknownKeyID means an entry references a signing key the
	// keyring does not hold.
	ErrUnknownKeyID = errors.New("audit: unknown signing key id")
)
