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
	"github.com/retr0h/chainlog/internal/ingest"
)

// PostAuditLogAsync enqueues an audit event for the ingest worker and
// returns an acknowledgement carrying the request ID.
func (a *Audit) PostAuditLogAsync(
	ctx echo.Context,
) error {
	var input auditstore.Input
	if err := ctx.Bind(&input); err != nil {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if input.RequestID == "" {
		input.RequestID = ctx.Response().Header().Get(echo.HeaderXRequestID)
	}

	req, err := a.Publisher.Enqueue(ctx.Request().Context(), input)
	if err != nil {
		if errors.Is(err, ingest.ErrInvalidInput) {
			return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
				Error: err.Error(),
			})
		}

		a.logger.Error(
			"failed to enqueue append request",
			slog.String("error", err.Error()),
		)
		return ctx.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Error: "failed to enqueue append request",
		})
	}

	return ctx.JSON(http.StatusAccepted, EnqueueResponse{
		RequestID:  req.ID,
		EnqueuedAt: req.EnqueuedAt,
	})
}
