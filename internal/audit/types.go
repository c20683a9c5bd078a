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

// Package audit implements a tamper-evident, hash-chained audit log.
//
// Every committed entry carries the content hash of its predecessor, a
// SHA-256 hash of its own canonical encoding, and an HMAC-SHA256 signature
// over the same bytes. Sequence numbers are strictly increasing and
// gap-free, so a missing entry is as detectable as a modified one.
package audit

import "time"

// GenesisHash is the previous-hash sentinel carried by the first entry in
// the chain: 64 zero hex digits, the width of a SHA-256 digest.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Action identifies the kind of event being recorded. The vocabulary is
// open: these constants cover the platform's own events, and callers may
// supply additional values.
type Action string

const (
	// ActionCreate records creation of a resource.
	ActionCreate Action = "create"
	// ActionUpdate records modification of a resource.
	ActionUpdate Action = "update"
	// ActionDelete records deletion of a resource.
	ActionDelete Action = "delete"
	// ActionRead records access to a sensitive resource.
	ActionRead Action = "read"
	// ActionLogin records a successful authentication.
	ActionLogin Action = "login"
	// ActionLogout records the end of an authenticated session.
	ActionLogout Action = "logout"
	// ActionLoginFailed records a failed authentication attempt.
	ActionLoginFailed Action = "login_failed"
	// ActionPermissionDenied records a rejected authorization check.
	ActionPermissionDenied Action = "permission_denied"
	// ActionMFAFailed records a failed multi-factor challenge.
	ActionMFAFailed Action = "mfa_failed"
	// ActionAccountLocked records an account lockout.
	ActionAccountLocked Action = "account_locked"
	// ActionImpersonate records an operator acting as another user.
	ActionImpersonate Action = "impersonate"
)

// FieldChange records a single field's value before and after a mutation.
// Creates carry a nil Old for every field.
type FieldChange struct {
	// Old is the value before the change.
	Old any `json:"old"`
	// New is the value after the change.
	New any `json:"new"`
}

// Entry is a single committed audit record. Committed entries are
// immutable: the package exposes no update or delete for them.
type Entry struct {
	// ID is the unique identifier for this entry, assigned at creation
	// and never reused.
	ID string `json:"id"`
	// Sequence is this entry's position in the chain. Sequences are
	// strictly increasing and gap-free across committed entries.
	Sequence int64 `json:"sequence_number"`
	// Timestamp is when the entry was assembled (UTC).
	Timestamp time.Time `json:"timestamp"`
	// Action is the recorded event kind.
	Action Action `json:"action"`
	// ResourceType identifies the kind of entity affected.
	ResourceType string `json:"resource_type"`
	// ResourceID identifies the affected entity.
	ResourceID string `json:"resource_id"`
	// ActorID is who performed the action.
	ActorID string `json:"actor_id"`
	// ActorEmail is stored redacted per the configured policy; the
	// signature covers the redacted value, not the original.
	ActorEmail string `json:"actor_email,omitempty"`
	// OrgID is the tenant scope. Empty for platform-level events.
	OrgID string `json:"org_id,omitempty"`
	// Changes maps field names to before/after values for mutations.
	Changes map[string]FieldChange `json:"changes,omitempty"`
	// Metadata carries free-form auxiliary context.
	Metadata map[string]any `json:"metadata,omitempty"`
	// RequestID correlates the entry to the originating request or task.
	RequestID string `json:"request_id,omitempty"`
	// Nonce is a fresh random value included in the signed payload so
	// that structurally identical entries never share a signature.
	Nonce string `json:"nonce"`
	// PreviousHash is the content hash of the preceding entry, or
	// GenesisHash for the first entry.
	PreviousHash string `json:"previous_hash"`
	// ContentHash is the SHA-256 of this entry's canonical encoding.
	ContentHash string `json:"content_hash"`
	// Signature is the HMAC-SHA256 over the canonical encoding.
	Signature string `json:"signature"`
	// KeyID names the signing key used, so entries stay verifiable
	// across key rotation.
	KeyID string `json:"key_id"`
}

// BreakKind classifies the earliest failure found while verifying a range.
type BreakKind string

const (
	// BreakSignatureMismatch means the recomputed HMAC does not match the
	// stored signature.
	BreakSignatureMismatch BreakKind = "signature_mismatch"
	// BreakHashMismatch means a stored field no longer matches the
	// entry's content hash, or the previous-hash linkage is broken.
	BreakHashMismatch BreakKind = "hash_mismatch"
	// BreakSequenceGap means an expected sequence number is missing.
	BreakSequenceGap BreakKind = "sequence_gap"
)

// VerificationReport is the outcome of walking a chain range. A broken
// chain is a finding, not an error: Valid is false and FirstBreakSeq with
// BreakKind locate the earliest entry that cannot be trusted. Everything
// after the first break is untrustworthy regardless of whether it would
// individually re-verify, so verification stops there.
type VerificationReport struct {
	// Valid is true when every entry in the range verified.
	Valid bool `json:"valid"`
	// FromSeq is the first sequence number of the verified range.
	FromSeq int64 `json:"from_seq"`
	// ToSeq is the last sequence number of the verified range.
	ToSeq int64 `json:"to_seq"`
	// EntriesChecked counts entries examined before stopping.
	EntriesChecked int `json:"entries_checked"`
	// FirstBreakSeq is the sequence number of the earliest break.
	FirstBreakSeq *int64 `json:"first_break_seq,omitempty"`
	// BreakKind classifies the earliest break.
	BreakKind BreakKind `json:"break_kind,omitempty"`
	// ExpectedHash is the hash the verifier computed, for hash breaks.
	ExpectedHash string `json:"expected_hash,omitempty"`
	// ActualHash is the hash found in storage, for hash breaks.
	ActualHash string `json:"actual_hash,omitempty"`
	// CheckedAt is when the verification ran.
	CheckedAt time.Time `json:"checked_at"`
}
