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

package client

import (
	"context"

	auditapi "github.com/retr0h/chainlog/internal/api/audit"
	"github.com/retr0h/chainlog/internal/api/health"
	"github.com/retr0h/chainlog/internal/audit"
)

// CombinedHandler is a superset of all smaller handler interfaces.
type CombinedHandler interface {
	AuditHandler
	HealthHandler
}

// AuditHandler defines an interface for interacting with audit log client operations.
type AuditHandler interface {
	// PostAuditLog appends an entry via the REST API.
	PostAuditLog(
		ctx context.Context,
		input audit.Input,
	) (*audit.Entry, error)

	// PostAuditLogAsync queues an entry for asynchronous append via the REST API.
	PostAuditLogAsync(
		ctx context.Context,
		input audit.Input,
	) (*auditapi.EnqueueResponse, error)

	// GetAuditLogs retrieves entries, optionally filtered and paged, via the REST API.
	GetAuditLogs(
		ctx context.Context,
		params GetAuditLogsParams,
	) (*auditapi.ListResponse, error)

	// GetAuditLogBySeq retrieves a specific entry by sequence number via the REST API.
	GetAuditLogBySeq(
		ctx context.Context,
		seq int64,
	) (*audit.Entry, error)

	// GetAuditVerify verifies the hash chain over a sequence range via the REST API.
	GetAuditVerify(
		ctx context.Context,
		from int64,
		to int64,
	) (*audit.VerificationReport, error)

	// GetAuditVerifyBySeq verifies a single entry via the REST API.
	GetAuditVerifyBySeq(
		ctx context.Context,
		seq int64,
	) (*auditapi.VerifyEntryResponse, error)

	// GetAuditExport retrieves the full log in chain order via the REST API.
	GetAuditExport(
		ctx context.Context,
	) (*auditapi.ExportResponse, error)
}

// HealthHandler defines an interface for interacting with Health client operations.
type HealthHandler interface {
	// GetHealth get the health liveness API endpoint.
	GetHealth(
		ctx context.Context,
	) (*health.HealthResponse, error)
	// GetHealthReady get the health readiness API endpoint.
	GetHealthReady(
		ctx context.Context,
	) (*health.ReadyResponse, error)
	// GetHealthDetailed get the health detailed API endpoint.
	GetHealthDetailed(
		ctx context.Context,
	) (*health.DetailedHealthResponse, error)
}
