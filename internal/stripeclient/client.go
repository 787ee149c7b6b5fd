// Package stripeclient is a thin REST client for the slice of the payment
// processor API the ledger consumes: balance-transaction listing, live
// balance retrieval and charge lookup for fee enrichment.
package stripeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tipwave/tip_ledger_backend/internal/core/ports"
)

const defaultPageLimit = 100

// Client talks to the processor HTTP API. An empty account id addresses the
// platform's own ledger; otherwise requests carry the connected-account
// scoping header.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	pageLimit  int
}

// New creates a client against the given API base (e.g. the live endpoint or
// a test double) authenticated with the secret key.
func New(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageLimit:  defaultPageLimit,
	}
}

var _ ports.ProcessorClient = (*Client)(nil)

type listEnvelope struct {
	Data    []json.RawMessage `json:"data"`
	HasMore bool              `json:"has_more"`
}

type balanceTransactionPayload struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	ReportingCategory string `json:"reporting_category"`
	Currency          string `json:"currency"`
	Amount            int64  `json:"amount"`
	Net               int64  `json:"net"`
	Fee               int64  `json:"fee"`
	FeeDetails        []struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Type     string `json:"type"`
	} `json:"fee_details"`
	Source  string `json:"source"`
	Created int64  `json:"created"`
}

// ListBalanceTransactions pages through /balance_transactions for the window.
// A zero toTs means "up to now".
func (c *Client) ListBalanceTransactions(ctx context.Context, stripeAccountID string, fromTs, toTs int64) ([]ports.BalanceTransaction, error) {
	var out []ports.BalanceTransaction
	startingAfter := ""

	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageLimit))
		if fromTs > 0 {
			params.Set("created[gte]", strconv.FormatInt(fromTs, 10))
		}
		if toTs > 0 {
			params.Set("created[lte]", strconv.FormatInt(toTs, 10))
		}
		if startingAfter != "" {
			params.Set("starting_after", startingAfter)
		}

		var envelope listEnvelope
		if err := c.get(ctx, stripeAccountID, "/balance_transactions?"+params.Encode(), &envelope); err != nil {
			return nil, err
		}

		for _, raw := range envelope.Data {
			var payload balanceTransactionPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return nil, fmt.Errorf("failed to decode balance transaction: %w", err)
			}
			bt := ports.BalanceTransaction{
				ID:                payload.ID,
				Type:              payload.Type,
				ReportingCategory: payload.ReportingCategory,
				Currency:          strings.ToUpper(payload.Currency),
				AmountCents:       payload.Amount,
				NetCents:          payload.Net,
				FeeCents:          payload.Fee,
				SourceID:          payload.Source,
				CreatedTs:         payload.Created,
				Raw:               raw,
			}
			for _, fd := range payload.FeeDetails {
				bt.FeeDetails = append(bt.FeeDetails, ports.FeeDetail{
					Type:        fd.Type,
					AmountCents: fd.Amount,
					Currency:    strings.ToUpper(fd.Currency),
				})
			}
			out = append(out, bt)
			startingAfter = payload.ID
		}

		if !envelope.HasMore || len(envelope.Data) == 0 {
			return out, nil
		}
	}
}

type chargePayload struct {
	ID                   string `json:"id"`
	PaymentIntent        string `json:"payment_intent"`
	ApplicationFeeAmount int64  `json:"application_fee_amount"`
	BalanceTransaction   struct {
		Fee int64 `json:"fee"`
	} `json:"balance_transaction"`
}

// GetCharge fetches a charge with its balance transaction expanded so the
// fee fallback can read the true processor fee.
func (c *Client) GetCharge(ctx context.Context, stripeAccountID, chargeID string) (*ports.Charge, error) {
	var payload chargePayload
	path := "/charges/" + url.PathEscape(chargeID) + "?expand[]=balance_transaction"
	if err := c.get(ctx, stripeAccountID, path, &payload); err != nil {
		return nil, err
	}
	return &ports.Charge{
		ID:                  payload.ID,
		PaymentIntentID:     payload.PaymentIntent,
		BalanceTxnFeeCents:  payload.BalanceTransaction.Fee,
		ApplicationFeeCents: payload.ApplicationFeeAmount,
	}, nil
}

type balancePayload struct {
	Available []struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"available"`
	Pending []struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"pending"`
}

// GetBalance returns the live available+pending funds per currency.
func (c *Client) GetBalance(ctx context.Context, stripeAccountID string) ([]ports.CurrencyBalance, error) {
	var payload balancePayload
	if err := c.get(ctx, stripeAccountID, "/balance", &payload); err != nil {
		return nil, err
	}

	byCurrency := make(map[string]*ports.CurrencyBalance)
	order := make([]string, 0, len(payload.Available))
	add := func(currency string, available, pending int64) {
		currency = strings.ToUpper(currency)
		cb, ok := byCurrency[currency]
		if !ok {
			cb = &ports.CurrencyBalance{Currency: currency}
			byCurrency[currency] = cb
			order = append(order, currency)
		}
		cb.AvailableCents += available
		cb.PendingCents += pending
	}
	for _, a := range payload.Available {
		add(a.Currency, a.Amount, 0)
	}
	for _, p := range payload.Pending {
		add(p.Currency, 0, p.Amount)
	}

	out := make([]ports.CurrencyBalance, 0, len(order))
	for _, currency := range order {
		out = append(out, *byCurrency[currency])
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, stripeAccountID, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build processor request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if stripeAccountID != "" {
		req.Header.Set("Stripe-Account", stripeAccountID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read processor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("processor returned %d for %s: %s", resp.StatusCode, path, truncate(body, 200))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode processor response for %s: %w", path, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
