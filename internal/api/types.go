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

// Package api provides the HTTP API server.
package api

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	auditapi "github.com/retr0h/chainlog/internal/api/audit"
	"github.com/retr0h/chainlog/internal/api/health"
	"github.com/retr0h/chainlog/internal/config"
)

// Server configures the Echo server and the handlers registered on it.
type Server struct {
	// Echo instance handling HTTP requests.
	Echo *echo.Echo

	logger       *slog.Logger
	appConfig    config.Config
	customRoles  map[string][]string
	tokenManager TokenValidator

	auditHandler  *auditapi.Audit
	healthHandler *health.Health
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithAuditHandler registers the audit log handler.
func WithAuditHandler(h *auditapi.Audit) Option {
	return func(s *Server) {
		s.auditHandler = h
	}
}

// WithHealthHandler registers the health handler.
func WithHealthHandler(h *health.Health) Option {
	return func(s *Server) {
		s.healthHandler = h
	}
}
