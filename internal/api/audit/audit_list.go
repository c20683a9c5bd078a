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
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/chainlog/internal/api/common"
	auditstore "github.com/retr0h/chainlog/internal/audit"
	"github.com/retr0h/chainlog/internal/validation"
)

// GetAuditLogs returns a paginated list of audit log entries.
func (a *Audit) GetAuditLogs(
	ctx echo.Context,
) error {
	var params ListParams
	if err := ctx.Bind(&params); err != nil {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "invalid query parameters",
		})
	}

	if errMsg, ok := validation.Struct(params); !ok {
		return ctx.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: errMsg,
		})
	}

	limit := 20
	if params.Limit != nil {
		limit = *params.Limit
	}

	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}

	entries, total, err := a.Store.List(
		ctx.Request().Context(),
		buildFilter(params),
		limit,
		offset,
	)
	if err != nil {
		a.logger.Error(
			"failed to list audit entries",
			slog.String("error", err.Error()),
		)
		return ctx.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "failed to list audit entries",
		})
	}

	return ctx.JSON(http.StatusOK, ListResponse{
		TotalItems: total,
		Items:      entries,
	})
}

// buildFilter converts validated query parameters to a store filter.
// Timestamps were already checked against RFC 3339, so parse errors
// cannot occur here.
func buildFilter(
	params ListParams,
) auditstore.ListFilter {
	filter := auditstore.ListFilter{
		ActorID:      params.ActorID,
		OrgID:        params.OrgID,
		Action:       auditstore.Action(params.Action),
		ResourceType: params.ResourceType,
	}

	if params.Since != "" {
		filter.Since, _ = time.Parse(time.RFC3339, params.Since)
	}

	if params.Until != "" {
		filter.Until, _ = time.Parse(time.RFC3339, params.Until)
	}

	return filter
}
