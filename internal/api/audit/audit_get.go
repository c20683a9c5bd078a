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
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/chainlog/internal/api/common"
	auditstore "github.com/retr0h/chainlog/internal/audit"
)

// GetAuditLogBySeq returns a single audit log entry by sequence number.
func (a *Audit) GetAuditLogBySeq(
	ctx echo.Context,
) error {
	seq, err := strconv.ParseInt(ctx.Param("seq"), 10, 64)
	if err != nil || seq < 1 {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "sequence number must be a positive integer",
		})
	}

	entry, err := a.Store.Get(ctx.Request().Context(), seq)
	if err != nil {
		if errors.Is(err, auditstore.ErrEntryNotFound) {
			return ctx.JSON(http.StatusNotFound, common.ErrorResponse{
				Error: "audit entry not found",
			})
		}

		a.logger.Error(
			"failed to get audit entry",
			slog.String("error", err.Error()),
			slog.Int64("seq", seq),
		)
		return ctx.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "failed to get audit entry",
		})
	}

	return ctx.JSON(http.StatusOK, entry)
}
