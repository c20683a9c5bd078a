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
	"github.com/retr0h/chainlog/internal/validation"
)

// GetAuditVerify re-verifies a range of the chain and returns the
// report. A tamper finding is a successful verification run, so the
// response is 200 with valid set to false, not an error status.
func (a *Audit) GetAuditVerify(
	ctx echo.Context,
) error {
	var params VerifyParams
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

	// Zero means unbounded. The verifier widens from to the genesis
	// entry and to to the current tail.
	var from, to int64
	if params.From != nil {
		from = *params.From
	}
	if params.To != nil {
		to = *params.To
	}

	report, err := a.Verifier.VerifyRange(ctx.Request().Context(), from, to)
	if err != nil {
		a.logger.Error(
			"failed to verify audit chain",
			slog.String("error", err.Error()),
			slog.Int64("from", from),
			slog.Int64("to", to),
		)
		return ctx.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Error: "failed to verify audit chain",
		})
	}

	return ctx.JSON(http.StatusOK, report)
}
