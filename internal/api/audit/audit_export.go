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

	"github.com/labstack/echo/v4"

	"github.com/retr0h/chainlog/internal/api/common"
	auditstore "github.com/retr0h/chainlog/internal/audit"
)

// exportBatchSize is how many entries each store page fetches during
// an export.
const exportBatchSize = 200

// GetAuditExport returns the entire log in chain order, oldest first,
// so the dump can be re-verified offline.
func (a *Audit) GetAuditExport(
	ctx echo.Context,
) error {
	reqCtx := ctx.Request().Context()

	var all []auditstore.Entry
	offset := 0
	for {
		entries, total, err := a.Store.List(
			reqCtx,
			auditstore.ListFilter{},
			exportBatchSize,
			offset,
		)
		if err != nil {
			a.logger.Error(
				"failed to export audit entries",
				slog.String("error", err.Error()),
			)
			return ctx.JSON(http.StatusInternalServerError, common.ErrorResponse{
				Error: "failed to export audit entries",
			})
		}

		all = append(all, entries...)
		offset += len(entries)
		if offset >= total || len(entries) == 0 {
			break
		}
	}

	// List returns newest first. Flip to chain order.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	if all == nil {
		all = []auditstore.Entry{}
	}

	return ctx.JSON(http.StatusOK, ExportResponse{
		TotalItems: len(all),
		Items:      all,
	})
}
