// Package backup serializes the full domain state to a versioned JSON
// document and restores it item by item. Restore is deliberately tolerant: a
// malformed entry is recorded and skipped so the rest of the document still
// recovers.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// Version is the document version this codec writes and accepts.
const Version = "1.0"

// Data is the full set of domain collections covered by a backup.
type Data struct {
	Transactions     []model.Transaction    `json:"transactions"`
	Categories       []model.Category       `json:"categories"`
	Goals            []model.Goal           `json:"goals"`
	Investments      []model.Investment     `json:"investments"`
	BudgetCategories []model.BudgetCategory `json:"budgetCategories"`
	BudgetExpenses   []model.BudgetExpense  `json:"budgetExpenses"`
}

// Summary carries per-collection counts for quick inspection of a document.
type Summary struct {
	Transactions     int `json:"transactions"`
	Categories       int `json:"categories"`
	Goals            int `json:"goals"`
	Investments      int `json:"investments"`
	BudgetCategories int `json:"budgetCategories"`
	BudgetExpenses   int `json:"budgetExpenses"`
}

// Document is the export envelope.
type Document struct {
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
	Summary    Summary   `json:"summary"`
	Data       Data      `json:"data"`
}

// Serialize wraps the domain state in a versioned envelope with summary
// counts. Pure; the caller decides where the payload goes.
func Serialize(state Data, now time.Time) *Document {
	return &Document{
		Version:    Version,
		ExportDate: now.UTC(),
		Summary: Summary{
			Transactions:     len(state.Transactions),
			Categories:       len(state.Categories),
			Goals:            len(state.Goals),
			Investments:      len(state.Investments),
			BudgetCategories: len(state.BudgetCategories),
			BudgetExpenses:   len(state.BudgetExpenses),
		},
		Data: state,
	}
}

// Encode renders a document as indented UTF-8 JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup document: %w", err)
	}
	return data, nil
}

// rawCollections defers item decoding so one malformed entry cannot take the
// whole collection down with it.
type rawCollections struct {
	Transactions     []json.RawMessage `json:"transactions"`
	Categories       []json.RawMessage `json:"categories"`
	Goals            []json.RawMessage `json:"goals"`
	Investments      []json.RawMessage `json:"investments"`
	BudgetCategories []json.RawMessage `json:"budgetCategories"`
	BudgetExpenses   []json.RawMessage `json:"budgetExpenses"`
}

// Envelope is the decoded-but-unvalidated form of an imported document.
// Collection items stay raw until restore touches them.
type Envelope struct {
	Version    string          `json:"version"`
	ExportDate string          `json:"exportDate"`
	Data       *rawCollections `json:"data"`
}

// Decode validates the structural envelope of an untrusted backup payload:
// both the version tag and the data object must be present, or the whole
// document is rejected before any item is applied.
func Decode(payload []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidBackup, err)
	}
	if env.Version == "" {
		return nil, fmt.Errorf("%w: missing version field", common.ErrInvalidBackup)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data envelope", common.ErrInvalidBackup)
	}
	return &env, nil
}
