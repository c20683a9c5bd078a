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

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/retr0h/chainlog/internal/authtoken"
)

// GetAuditHandler returns audit handler for registration.
//
// The static /verify and /export routes are registered alongside the
// parameterized /:seq routes. Echo matches static segments first, so
// GET /audit/verify never falls through to the sequence lookup.
func (s *Server) GetAuditHandler() []func(e *echo.Echo) {
	return []func(e *echo.Echo){
		func(e *echo.Echo) {
			g := e.Group("/audit")

			g.POST("", s.auditHandler.PostAuditLog,
				s.requirePermission(authtoken.PermAuditWrite))
			g.POST("/async", s.auditHandler.PostAuditLogAsync,
				s.requirePermission(authtoken.PermAuditWrite))
			g.GET("", s.auditHandler.GetAuditLogs,
				s.requirePermission(authtoken.PermAuditRead))
			g.GET("/export", s.auditHandler.GetAuditExport,
				s.requirePermission(authtoken.PermAuditRead))
			g.GET("/verify", s.auditHandler.GetAuditVerify,
				s.requirePermission(authtoken.PermAuditVerify))
			g.GET("/:seq", s.auditHandler.GetAuditLogBySeq,
				s.requirePermission(authtoken.PermAuditRead))
			g.GET("/:seq/verify", s.auditHandler.GetAuditVerifyBySeq,
				s.requirePermission(authtoken.PermAuditVerify))
		},
	}
}
