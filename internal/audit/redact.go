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
	"crypto/sha256"
	"encoding/hex"
)

// Policy selects how sensitive values are transformed before they become
// part of the permanent, signed record. Redaction runs once, ahead of
// signing: the signature protects what was retained, not the original.
type Policy string

const (
	// PolicyMask keeps the first two and last two characters and blanks
	// the middle ("user@example.com" becomes "us***om"); values of four
	// characters or fewer become "***".
	PolicyMask Policy = "mask"
	// PolicyHash replaces the value with the first 16 hex characters of
	// its SHA-256 digest.
	PolicyHash Policy = "hash"
	// PolicyDrop removes the value entirely.
	PolicyDrop Policy = "drop"
)

// DefaultPolicy applies when configuration names no policy.
const DefaultPolicy = PolicyMask

// Redactor applies a redaction policy to sensitive fields. The zero field
// set still redacts the actor email, which is always treated as
// sensitive.
type Redactor struct {
	policy Policy
	fields map[string]struct{}
}

// NewRedactor creates a Redactor for the given policy and sensitive field
// names. An empty policy falls back to DefaultPolicy.
func NewRedactor(
	policy Policy,
	fields []string,
) *Redactor {
	if policy == "" {
		policy = DefaultPolicy
	}

	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}

	return &Redactor{
		policy: policy,
		fields: set,
	}
}

// Policy returns the configured policy.
func (r *Redactor) Policy() Policy {
	return r.policy
}

// RedactValue applies the policy to a single sensitive value. The second
// return is false when the value must be absent from the record (drop).
func (r *Redactor) RedactValue(
	value string,
) (string, bool) {
	if value == "" {
		return "", true
	}

	switch r.policy {
	case PolicyHash:
		return hashValue(value), true
	case PolicyDrop:
		return "", false
	default:
		return maskValue(value), true
	}
}

// RedactChanges returns a copy of the changes map with sensitive fields
// redacted. String values follow the policy; non-string values in
// sensitive fields are dropped regardless of policy, since masking or
// hashing them has no defined shape.
func (r *Redactor) RedactChanges(
	changes map[string]FieldChange,
) map[string]FieldChange {
	if changes == nil {
		return nil
	}

	out := make(map[string]FieldChange, len(changes))
	for field, change := range changes {
		if _, ok := r.fields[field]; !ok {
			out[field] = change
			continue
		}

		out[field] = FieldChange{
			Old: r.redactAny(change.Old),
			New: r.redactAny(change.New),
		}
	}

	return out
}

// RedactMetadata returns a copy of the metadata map with sensitive keys
// redacted, under the same rules as RedactChanges.
func (r *Redactor) RedactMetadata(
	metadata map[string]any,
) map[string]any {
	if metadata == nil {
		return nil
	}

	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		if _, ok := r.fields[key]; !ok {
			out[key] = value
			continue
		}

		out[key] = r.redactAny(value)
	}

	return out
}

func (r *Redactor) redactAny(value any) any {
	s, ok := value.(string)
	if !ok {
		return nil
	}

	redacted, keep := r.RedactValue(s)
	if !keep {
		return nil
	}

	return redacted
}

func maskValue(s string) string {
	runes := []rune(s)
	if len(runes) <= 4 {
		return "***"
	}

	return string(runes[:2]) + "***" + string(runes[len(runes)-2:])
}

func hashValue(s string) string {
	sum := sha256.Sum256([]byte(s))

	return hex.EncodeToString(sum[:])[:16]
}
