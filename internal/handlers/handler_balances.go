package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/dto"
	"github.com/tipwave/tip_ledger_backend/internal/middleware"
)

// balancesHandler handles the daily balance backfill endpoint.
type balancesHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalancesHandler(balanceService portssvc.BalanceSvcFacade) *balancesHandler {
	return &balancesHandler{balanceService: balanceService}
}

// backfillBalances godoc
// @Summary Recompute daily running balances over a date range
// @Description Recomputes per-account per-currency daily balances from start_date to end_date inclusive, in ascending day order so each day carries the prior day forward. end_date defaults to today.
// @Tags balances
// @Accept  json
// @Produce  json
// @Param   request body dto.BackfillBalancesRequest true "Date range and optional account-type filter"
// @Success 200 {object} dto.BackfillBalancesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /balances/backfill [post]
func (h *balancesHandler) backfillBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BackfillBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "Invalid request format: " + err.Error()})
		return
	}

	startDate, err := dto.ParseLedgerDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: err.Error()})
		return
	}
	endStr := req.EndDate
	if endStr == "" {
		endStr = "today"
	}
	endDate, err := dto.ParseLedgerDate(endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: err.Error()})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "end_date is before start_date"})
		return
	}

	filter, ok := accountTypeFromParam(req.AccountType)
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "invalid account_type"})
		return
	}

	days, err := h.balanceService.Recompute(c.Request.Context(), startDate, endDate, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: err.Error()})
			return
		}
		logger.Error("Failed to recompute daily balances",
			slog.String("start_date", startDate.Format(dto.DateLayout)),
			slog.String("end_date", endDate.Format(dto.DateLayout)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to recompute daily balances"})
		return
	}

	resp := dto.BackfillBalancesResponse{
		OK:        true,
		StartDate: startDate.Format(dto.DateLayout),
		EndDate:   endDate.Format(dto.DateLayout),
		Days:      make([]dto.BackfillBalancesDay, 0, len(days)),
	}
	for _, day := range days {
		resp.ProcessedRows += day.RowsWritten
		resp.Days = append(resp.Days, dto.BackfillBalancesDay{
			Date:        day.Date.Format(dto.DateLayout),
			RowsWritten: day.RowsWritten,
		})
	}

	logger.Info("Daily balance backfill complete",
		slog.String("start_date", resp.StartDate),
		slog.String("end_date", resp.EndDate),
		slog.Int("processed_rows", resp.ProcessedRows))
	c.JSON(http.StatusOK, resp)
}
