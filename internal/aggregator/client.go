// Package aggregator fetches transactions from a third-party bank-data API
// (Plaid) and normalizes them into candidate records for the ingestion
// pipeline.
package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// Config holds aggregator API credentials and environment selection.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("aggregator client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("aggregator secret is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("aggregator access token is required")
	}
	switch c.Environment {
	case "sandbox", "production":
		return nil
	default:
		return fmt.Errorf("invalid aggregator environment %q: must be sandbox or production", c.Environment)
	}
}

// Client fetches transactions through the Plaid API.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	accessToken string
	retryOpts   common.RetryOptions
}

// NewClient creates an aggregator client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		logger:      slog.Default().With("component", "aggregator"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetTransactions fetches all transactions in the date range, paging through
// the API, and maps them onto candidate records.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("fetching aggregator transactions",
		"start_date", startDate.Format(model.DateLayout),
		"end_date", endDate.Format(model.DateLayout))

	var fetched []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500)

	for {
		var page []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format(model.DateLayout),
				endDate.Format(model.DateLayout),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						c.logger.Warn("rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: common.ErrAggregatorRateLimit, Retryable: true}
					}
					return fmt.Errorf("aggregator API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("%w: %v", common.ErrAggregatorConnection, err)
			}

			page = resp.GetTransactions()
			return nil
		}, c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		fetched = append(fetched, page...)
		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	candidates := make([]model.Transaction, 0, len(fetched))
	for _, pt := range fetched {
		txn, err := c.convert(pt)
		if err != nil {
			c.logger.Warn("skipping aggregator transaction",
				"transaction_id", pt.GetTransactionId(), "error", err)
			continue
		}
		candidates = append(candidates, txn)
	}

	c.logger.Info("fetched aggregator transactions", "count", len(candidates))
	return candidates, nil
}

// convert maps an API transaction onto the canonical record. The API reports
// positive amounts for money out and negative for money in. A record whose
// date cannot be parsed is rejected rather than stamped with a guess.
func (c *Client) convert(pt plaid.Transaction) (model.Transaction, error) {
	date, err := time.Parse(model.DateLayout, pt.GetDate())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid transaction date %q: %w", pt.GetDate(), err)
	}

	description := pt.GetMerchantName()
	if description == "" {
		description = pt.GetName()
	}

	amount := decimal.NewFromFloat(pt.GetAmount())
	txnType := model.TypeExpense
	if amount.IsNegative() {
		txnType = model.TypeIncome
	}

	return model.Transaction{
		ID:          pt.GetTransactionId(),
		Date:        date,
		Description: common.Ellipsize(description, 100),
		Amount:      amount.Abs(),
		Type:        txnType,
		Source:      model.SourceAggregator,
		SourceDetails: &model.SourceDetails{
			AccountID: pt.GetAccountId(),
		},
	}, nil
}

// extractPlaidError attempts to extract a structured API error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}
