package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// CreateTransaction commits one canonical record. A record whose hash is
// already present is rejected with ErrDuplicateEntry; the duplicate detector
// upstream handles near matches, this index handles exact re-imports.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	hash := txn.GenerateHash()

	var tags []byte
	if len(txn.Tags) > 0 {
		var err error
		tags, err = json.Marshal(txn.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
	}

	var sourceFile, sourceBank, sourceAccount string
	if txn.SourceDetails != nil {
		sourceFile = txn.SourceDetails.FileName
		sourceBank = txn.SourceDetails.BankName
		sourceAccount = txn.SourceDetails.AccountID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, hash, date, description, amount, type, category_id,
			source, source_file, source_bank, source_account, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, hash, txn.Date.Format(model.DateLayout), txn.Description,
		txn.Amount.StringFixed(2), string(txn.Type), nullString(txn.CategoryID),
		string(txn.Source), sourceFile, sourceBank, sourceAccount, string(tags))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s", common.ErrDuplicateEntry, txn.Description)
		}
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	slog.Debug("created transaction", "id", txn.ID, "amount", txn.Amount, "type", txn.Type)
	return &txn, nil
}

// GetTransactions returns all committed transactions, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, description, amount, type, category_id,
		       source, source_file, source_bank, source_account, tags
		FROM transactions
		ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// CountByCategory returns how many transactions reference a category, used
// to refuse deleting categories still in use.
func (s *SQLiteStorage) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (*model.Transaction, error) {
	var (
		txn                                model.Transaction
		date, amount, txnType, source      string
		categoryID                         sql.NullString
		sourceFile, sourceBank, sourceAcct sql.NullString
		tags                               sql.NullString
	)

	if err := rows.Scan(&txn.ID, &date, &txn.Description, &amount, &txnType,
		&categoryID, &source, &sourceFile, &sourceBank, &sourceAcct, &tags); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	parsedDate, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
	}
	txn.Date = parsedDate

	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	txn.Amount = parsedAmount

	txn.Type = model.TransactionType(txnType)
	txn.Source = model.TransactionSource(source)
	txn.CategoryID = categoryID.String

	if sourceFile.String != "" || sourceBank.String != "" || sourceAcct.String != "" {
		txn.SourceDetails = &model.SourceDetails{
			FileName:  sourceFile.String,
			BankName:  sourceBank.String,
			AccountID: sourceAcct.String,
		}
	}

	if tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &txn.Tags); err != nil {
			return nil, fmt.Errorf("invalid stored tags: %w", err)
		}
	}

	return &txn, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
