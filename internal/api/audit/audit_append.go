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
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/chainlog/internal/api/common"
	auditstore "github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/validation"
)

// PostAuditLog appends an audit event to the chain and returns the
// committed entry.
func (a *Audit) PostAuditLog(
	ctx echo.Context,
) error {
	var input auditstore.Input
	if err := ctx.Bind(&input); err != nil {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "invalid request body",
		})
	}

	// Correlate the entry with this request unless the caller carried
	// its own correlation ID through.
	if input.RequestID == "" {
		input.RequestID = ctx.Response().Header().Get(echo.HeaderXRequestID)
	}

	if errMsg, ok := validation.Struct(input); !ok {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: errMsg,
		})
	}

	entry, err := a.Appender.Append(ctx.Request().Context(), input)
	if err != nil {
		return a.appendError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, entry)
}

// appendError maps append failures to HTTP status codes.
func (a *Audit) appendError(
	ctx echo.Context,
	err error,
) error {
	a.logger.Error(
		"failed to append audit entry",
		slog.String("error", err.Error()),
	)

	switch {
	case errors.Is(err, auditstore.ErrAllocationConflict):
		return ctx.JSON(http.StatusConflict, common.ErrorResponse{
			Error: "sequence allocation conflict, retry the append",
		})
	case errors.Is(err, auditstore.ErrPersistenceFailure):
		return ctx.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Error: "audit store unavailable",
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "failed to append audit entry",
		})
	}
}
