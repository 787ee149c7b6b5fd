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
	"github.com/tipwave/tip_ledger_backend/internal/utils/money"
)

// reconcileHandler handles the read-only reconciliation endpoint.
type reconcileHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconcileHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconcileHandler {
	return &reconcileHandler{reconciliationService: reconciliationService}
}

// reconcile godoc
// @Summary Compare ledger balances against the processor's live balance
// @Description Checks one account for one UTC day: start-of-day balance plus the day's net delta must equal end-of-day balance. Read-only; a drift is reported, never auto-corrected.
// @Tags reconcile
// @Produce  json
// @Param   type query string true "Account type" Enums(platform, earner, employer)
// @Param   stripeAccountId query string false "Connected account id; omit for platform"
// @Param   day query string false "UTC day (YYYY-MM-DD, today, yesterday); defaults to today"
// @Param   currency query string false "Currency to check when the live balance holds several"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reconcile [get]
func (h *reconcileHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter, ok := accountTypeFromParam(c.Query("type"))
	if !ok || filter == nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "type must be one of platform, earner, employer"})
		return
	}
	accountType := *filter

	stripeAccountID := c.Query("stripeAccountId")

	dayStr := c.DefaultQuery("day", "today")
	day, err := dto.ParseLedgerDate(dayStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: err.Error()})
		return
	}

	result, err := h.reconciliationService.Reconcile(c.Request.Context(), accountType, stripeAccountID, day, c.Query("currency"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownAccount), errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{OK: false, Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: err.Error()})
		case errors.Is(err, apperrors.ErrUpstream):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{OK: false, Error: err.Error()})
		default:
			logger.Error("Reconciliation failed",
				slog.String("account_type", string(accountType)),
				slog.String("stripe_account_id", stripeAccountID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Reconciliation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ReconcileResponse{
		OK:                  true,
		Currency:            result.Currency,
		BalanceStartCents:   result.BalanceStartCents,
		BalanceEndCents:     result.BalanceEndCents,
		DeltaCents:          result.DeltaCents,
		ExpectedEndCents:    result.ExpectedEndCents,
		Matched:             result.Matched,
		BalanceStartDisplay: money.FormatCents(result.BalanceStartCents),
		BalanceEndDisplay:   money.FormatCents(result.BalanceEndCents),
		DeltaDisplay:        money.FormatCents(result.DeltaCents),
	})
}
