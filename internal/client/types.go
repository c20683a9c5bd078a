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
	"log/slog"
	"net/http"

	"github.com/retr0h/chainlog/internal/config"
)

// Client talks to the audit log REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	appConfig  config.Config
}

// authTransport injects the bearer token and logs request timing.
type authTransport struct {
	base       http.RoundTripper
	authHeader string
	logger     *slog.Logger
}

// GetAuditLogsParams filters and pages the entry listing. Zero values
// are omitted from the query string.
type GetAuditLogsParams struct {
	Limit        *int
	Offset       *int
	ActorID      string
	OrgID        string
	Action       string
	ResourceType string
	// Since and Until are RFC 3339 timestamps.
	Since string
	Until string
}
