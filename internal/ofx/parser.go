// Package ofx parses OFX/QFX bank exports into candidate transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

var (
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRe   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in bank-produced OFX files:
// leading blank lines, mixed-case SEVERITY values, and SGML-style tags
// missing their closing bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRe.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX document and returns candidate transactions from
// every bank and credit-card statement it contains. A statement that fails
// to convert is logged and skipped; the rest of the file still parses.
func (p *Parser) Parse(ctx context.Context, reader io.Reader, fileName string) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var candidates []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		accountID := string(stmt.BankAcctFrom.AcctID)
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			candidates = append(candidates, p.convert(ofxTxn, accountID, fileName))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		accountID := string(stmt.CCAcctFrom.AcctID)
		for _, ofxTxn := range stmt.BankTranList.Transactions {
			candidates = append(candidates, p.convert(ofxTxn, accountID, fileName))
		}
	}

	if len(candidates) == 0 {
		return nil, common.ErrNoTransactions
	}

	slog.Debug("parsed OFX file", "file", fileName, "candidates", len(candidates))
	return candidates, nil
}

// convert maps one OFX transaction onto the canonical record. OFX uses a
// negative amount for debits, so the sign decides the direction and the
// stored amount is always positive.
func (p *Parser) convert(ofxTxn ofxgo.Transaction, accountID, fileName string) model.Transaction {
	// TrnAmt wraps a big.Rat; its String form is the exact decimal, so going
	// through float64 would lose precision.
	amount, err := decimal.NewFromString(ofxTxn.TrnAmt.String())
	if err != nil {
		amountFloat, _ := ofxTxn.TrnAmt.Float64()
		amount = decimal.NewFromFloat(amountFloat)
	}

	txnType := model.TypeIncome
	if amount.IsNegative() {
		txnType = model.TypeExpense
	}

	description := string(ofxTxn.Name)
	if ofxTxn.Payee != nil && ofxTxn.Payee.Name != "" {
		description = string(ofxTxn.Payee.Name)
	} else if ofxTxn.Memo != "" && description == "" {
		description = string(ofxTxn.Memo)
	}

	return model.Transaction{
		ID:          string(ofxTxn.FiTID),
		Date:        ofxTxn.DtPosted.Time,
		Description: common.Ellipsize(strings.TrimSpace(description), 100),
		Amount:      amount.Abs(),
		Type:        txnType,
		Source:      model.SourceImport,
		SourceDetails: &model.SourceDetails{
			FileName:  fileName,
			AccountID: accountID,
		},
	}
}
