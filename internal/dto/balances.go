package dto

// BackfillBalancesRequest triggers the daily balance aggregator over a date
// range. Dates are YYYY-MM-DD or the sentinels "today"/"yesterday".
type BackfillBalancesRequest struct {
	StartDate   string `json:"start_date" binding:"required,ledgerdate"`
	EndDate     string `json:"end_date" binding:"omitempty,ledgerdate"`
	AccountType string `json:"account_type" binding:"omitempty,oneof=platform earner employer"`
}

// BackfillBalancesDay is one recomputed day in the response.
type BackfillBalancesDay struct {
	Date        string `json:"date"`
	RowsWritten int    `json:"rows_written"`
}

// BackfillBalancesResponse reports the recomputed range.
type BackfillBalancesResponse struct {
	OK            bool                  `json:"ok"`
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	ProcessedRows int                   `json:"processed_rows"`
	Days          []BackfillBalancesDay `json:"days"`
}
