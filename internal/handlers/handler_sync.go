package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tipwave/tip_ledger_backend/internal/apperrors"
	"github.com/tipwave/tip_ledger_backend/internal/core/domain"
	portssvc "github.com/tipwave/tip_ledger_backend/internal/core/ports/services"
	"github.com/tipwave/tip_ledger_backend/internal/dto"
	"github.com/tipwave/tip_ledger_backend/internal/middleware"
)

const defaultBackfillAllLimit = 50

// deauthorizeEventTypes are processor webhook events that mean the connected
// account revoked or lost access. They deactivate the account instead of
// enqueueing a sync.
var deauthorizeEventTypes = map[string]bool{
	"account.application.deauthorized": true,
}

// syncHandler handles the sync trigger endpoints.
type syncHandler struct {
	registryService portssvc.RegistrySvcFacade
	syncJobService  portssvc.SyncJobSvcFacade
}

func newSyncHandler(registryService portssvc.RegistrySvcFacade, syncJobService portssvc.SyncJobSvcFacade) *syncHandler {
	return &syncHandler{registryService: registryService, syncJobService: syncJobService}
}

// markDirty godoc
// @Summary Mark an account dirty, enqueueing a sync job
// @Description Resolves the external account, registers it if needed and enqueues a deduplicated sync job. Deauthorization events deactivate the account instead. Called by processor webhooks, cron or manual ops.
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   request body dto.MarkDirtyRequest true "Dirty-account notification"
// @Success 200 {object} dto.MarkDirtyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sync/mark-dirty [post]
func (h *syncHandler) markDirty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkDirtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind mark-dirty request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "Invalid request format: " + err.Error()})
		return
	}

	externalAccountID := req.ExternalAccountID
	if req.Mode == "platform" {
		externalAccountID = ""
	} else if externalAccountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "external_account_id is required in connected mode"})
		return
	}

	ctx := c.Request.Context()
	accountType, err := h.registryService.ResolveAccountType(ctx, externalAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownAccount) {
			logger.Warn("mark-dirty for unknown account",
				slog.String("external_account_id", externalAccountID),
				slog.String("source", req.Source))
			c.JSON(http.StatusNotFound, dto.ErrorResponse{OK: false, Error: err.Error()})
			return
		}
		logger.Error("Failed to resolve account type", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to resolve account"})
		return
	}

	if deauthorizeEventTypes[req.EventType] {
		if externalAccountID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "platform account cannot be deactivated"})
			return
		}
		if err := h.registryService.Deactivate(ctx, externalAccountID); err != nil {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to deactivate account"})
			return
		}
		logger.Info("account deactivated on deauthorization",
			slog.String("account_type", string(accountType)),
			slog.String("external_account_id", externalAccountID),
			slog.String("event_type", req.EventType))
		c.JSON(http.StatusOK, dto.MarkDirtyResponse{
			OK:          true,
			Queued:      false,
			AccountType: string(accountType),
			Deactivated: true,
			Reason:      "account deactivated",
		})
		return
	}

	if err := h.registryService.EnsureRegistered(ctx, accountType, externalAccountID); err != nil {
		logger.Error("Failed to register account", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to register account"})
		return
	}

	job, queued, err := h.syncJobService.Enqueue(ctx, accountType, externalAccountID, req.FromTs, req.ToTs)
	if err != nil {
		logger.Error("Failed to enqueue sync job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to enqueue sync job"})
		return
	}

	resp := dto.MarkDirtyResponse{OK: true, Queued: queued, AccountType: string(accountType)}
	if queued {
		resp.JobID = job.JobID
	} else {
		resp.Reason = "job already queued or running"
	}

	logger.Info("mark-dirty processed",
		slog.String("account_type", string(accountType)),
		slog.String("external_account_id", externalAccountID),
		slog.String("source", req.Source),
		slog.String("event_type", req.EventType),
		slog.Bool("queued", queued))
	c.JSON(http.StatusOK, resp)
}

// backfillAll godoc
// @Summary Enqueue sync jobs for all active accounts
// @Description Enqueues a sync job for up to limit active registered accounts, stalest watermark first.
// @Tags sync
// @Accept  json
// @Produce  json
// @Param   request body dto.BackfillAllRequest true "Backfill window"
// @Success 200 {object} dto.BackfillAllResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sync/backfill-all [post]
func (h *syncHandler) backfillAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BackfillAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "Invalid request format: " + err.Error()})
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultBackfillAllLimit
	}

	ctx := c.Request.Context()
	accounts, err := h.registryService.ListActive(ctx, limit)
	if err != nil {
		logger.Error("Failed to list active accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: "Failed to list active accounts"})
		return
	}

	resp := dto.BackfillAllResponse{OK: true, Results: make([]dto.BackfillAllResult, 0, len(accounts))}
	for _, account := range accounts {
		result := dto.BackfillAllResult{
			AccountType:     string(account.AccountType),
			StripeAccountID: account.StripeAccountID,
		}
		job, queued, err := h.syncJobService.Enqueue(ctx, account.AccountType, account.StripeAccountID, req.FromTs, req.ToTs)
		switch {
		case err != nil:
			result.Reason = err.Error()
		case !queued:
			result.Reason = "job already queued or running"
		default:
			result.Queued = true
			result.JobID = job.JobID
			resp.Queued++
		}
		resp.Results = append(resp.Results, result)
	}

	logger.Info("backfill-all processed",
		slog.Int("accounts", len(accounts)),
		slog.Int("queued", resp.Queued))
	c.JSON(http.StatusOK, resp)
}

// accountTypeFromParam parses an account type string, allowing empty.
func accountTypeFromParam(s string) (*domain.AccountType, bool) {
	if s == "" {
		return nil, true
	}
	if !domain.ValidAccountType(s) {
		return nil, false
	}
	t := domain.AccountType(s)
	return &t, true
}
