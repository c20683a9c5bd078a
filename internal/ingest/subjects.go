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

// Package ingest provides the NATS subject hierarchy and JetStream
// plumbing for asynchronous audit entry submission.
//
// Subject Format: chainlog.ingest.{operation}
//
// A single operation exists today:
//   - chainlog.ingest.entry (queued append requests)
//
// When a namespace is configured, it prefixes both subjects
// (ns.chainlog.ingest.entry) and infrastructure names (ns-CHAINLOG_INGEST),
// letting several deployments share one NATS cluster.
package ingest

import "fmt"

const (
	// IngestPrefix is the subject hierarchy prefix for ingest operations.
	IngestPrefix = "chainlog.ingest"

	// EntryOperation is the operation token for queued append requests.
	EntryOperation = "entry"
)

// namespace prefixes all subjects built by this package. Set once at
// startup via Init.
var namespace string

// Init sets the subject namespace for this process.
func Init(
	ns string,
) {
	namespace = ns
}

// BuildEntrySubject creates the subject for queued append requests.
// Example: chainlog.ingest.entry
func BuildEntrySubject() string {
	return ApplyNamespaceToSubjects(
		namespace,
		fmt.Sprintf("%s.%s", IngestPrefix, EntryOperation),
	)
}

// StreamSubjects returns the wildcard subject set the ingest stream
// captures. Example: chainlog.ingest.>
func StreamSubjects() string {
	return ApplyNamespaceToSubjects(namespace, IngestPrefix+".>")
}

// ApplyNamespaceToSubjects prefixes a subject pattern with the
// namespace. An empty namespace leaves the pattern unchanged.
func ApplyNamespaceToSubjects(
	ns string,
	subjects string,
) string {
	if ns == "" {
		return subjects
	}

	return ns + "." + subjects
}

// ApplyNamespaceToInfraName prefixes a stream or bucket name with the
// namespace. An empty namespace leaves the name unchanged.
func ApplyNamespaceToInfraName(
	ns string,
	infraName string,
) string {
	if ns == "" {
		return infraName
	}

	return ns + "-" + infraName
}
