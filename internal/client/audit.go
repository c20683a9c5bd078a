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

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	auditapi "github.com/retr0h/chainlog/internal/api/audit"
	"github.com/retr0h/chainlog/internal/audit"
)

// PostAuditLog appends an entry via the REST API.
func (c *Client) PostAuditLog(
	ctx context.Context,
	input audit.Input,
) (*audit.Entry, error) {
	var entry audit.Entry
	if err := c.doJSON(ctx, http.MethodPost, "/audit", nil, input, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// PostAuditLogAsync queues an entry for asynchronous append via the REST API.
func (c *Client) PostAuditLogAsync(
	ctx context.Context,
	input audit.Input,
) (*auditapi.EnqueueResponse, error) {
	var resp auditapi.EnqueueResponse
	if err := c.doJSON(ctx, http.MethodPost, "/audit/async", nil, input, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetAuditLogs retrieves entries, optionally filtered and paged, via the REST API.
func (c *Client) GetAuditLogs(
	ctx context.Context,
	params GetAuditLogsParams,
) (*auditapi.ListResponse, error) {
	query := url.Values{}
	if params.Limit != nil {
		query.Set("limit", strconv.Itoa(*params.Limit))
	}
	if params.Offset != nil {
		query.Set("offset", strconv.Itoa(*params.Offset))
	}
	if params.ActorID != "" {
		query.Set("actor_id", params.ActorID)
	}
	if params.OrgID != "" {
		query.Set("org_id", params.OrgID)
	}
	if params.Action != "" {
		query.Set("action", params.Action)
	}
	if params.ResourceType != "" {
		query.Set("resource_type", params.ResourceType)
	}
	if params.Since != "" {
		query.Set("since", params.Since)
	}
	if params.Until != "" {
		query.Set("until", params.Until)
	}

	var resp auditapi.ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/audit", query, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetAuditLogBySeq retrieves a specific entry by sequence number via the REST API.
func (c *Client) GetAuditLogBySeq(
	ctx context.Context,
	seq int64,
) (*audit.Entry, error) {
	var entry audit.Entry
	path := fmt.Sprintf("/audit/%d", seq)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// GetAuditVerify verifies the hash chain over a sequence range via the
// REST API. Zero bounds verify from the genesis entry to the tail.
func (c *Client) GetAuditVerify(
	ctx context.Context,
	from int64,
	to int64,
) (*audit.VerificationReport, error) {
	query := url.Values{}
	if from > 0 {
		query.Set("from", strconv.FormatInt(from, 10))
	}
	if to > 0 {
		query.Set("to", strconv.FormatInt(to, 10))
	}

	var report audit.VerificationReport
	if err := c.doJSON(ctx, http.MethodGet, "/audit/verify", query, nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// GetAuditVerifyBySeq verifies a single entry via the REST API.
func (c *Client) GetAuditVerifyBySeq(
	ctx context.Context,
	seq int64,
) (*auditapi.VerifyEntryResponse, error) {
	var resp auditapi.VerifyEntryResponse
	path := fmt.Sprintf("/audit/%d/verify", seq)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetAuditExport retrieves the full log in chain order via the REST API.
func (c *Client) GetAuditExport(
	ctx context.Context,
) (*auditapi.ExportResponse, error) {
	var resp auditapi.ExportResponse
	if err := c.doJSON(ctx, http.MethodGet, "/audit/export", nil, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
