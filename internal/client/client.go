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

// Package client provides the HTTP client for the audit log REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/retr0h/chainlog/internal/api/common"
	"github.com/retr0h/chainlog/internal/config"
)

// New factory to create a new instance.
func New(
	logger *slog.Logger,
	appConfig config.Config,
) *Client {
	transport := &authTransport{
		base:       http.DefaultTransport,
		authHeader: "Bearer " + appConfig.API.Client.Security.BearerToken,
		logger:     logger,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
		},
		baseURL:   strings.TrimRight(appConfig.API.URL, "/"),
		logger:    logger,
		appConfig: appConfig,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *authTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	req.Header.Set("Authorization", t.authHeader)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug("http request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return nil, err
	}

	t.logger.Debug("http response",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// doJSON performs a request and decodes the JSON response into out.
// Statuses listed in allowed decode into out despite being errors on
// the wire, for endpoints whose failure body shares the success shape.
func (c *Client) doJSON(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
	allowed ...int,
) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest && !statusAllowed(resp.StatusCode, allowed) {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func statusAllowed(
	status int,
	allowed []int,
) bool {
	for _, a := range allowed {
		if status == a {
			return true
		}
	}

	return false
}

// apiError extracts the error envelope from a failed response.
func apiError(
	status int,
	body []byte,
) error {
	var envelope common.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("api error (%d): %s", status, envelope.Error)
	}

	return fmt.Errorf("api error (%d): %s", status, strings.TrimSpace(string(body)))
}
