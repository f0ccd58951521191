package tabular

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/format"
	"github.com/olumendes/capital5/internal/model"
)

// RowInterpreter converts one tokenized data row into a candidate transaction.
// Each bank family gets its own implementation so its quirks stay isolated.
type RowInterpreter interface {
	InterpretRow(tokens []string, cols columnIndex, desc *format.Descriptor) (model.Transaction, error)
}

// interpreterFor resolves the strategy for a descriptor. The InvertedSign
// flag selects the card-statement sign convention for any bank family, and
// unknown families additionally get split-amount repair.
func interpreterFor(desc *format.Descriptor) RowInterpreter {
	var base RowInterpreter = standardInterpreter{}
	if desc.InvertedSign || desc.Bank == format.BankNubank {
		base = invertedInterpreter{}
	}

	switch desc.Bank {
	case format.BankNubank, format.BankInter, format.BankItau, format.BankCaixa:
		return base
	default:
		return genericInterpreter{base: base}
	}
}

// incomeKeywords flag a description as income regardless of the literal sign.
// Checked against normalized (lower-case, diacritics-stripped) text.
var incomeKeywords = []string{
	"receb", // recebido, recebida, pagamento recebido
	"salario",
	"deposito",
	"rendimento",
	"estorno",
}

func matchesIncomeKeyword(description string) bool {
	normalized := common.Normalize(description)
	for _, kw := range incomeKeywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

var (
	integerTokenRe = regexp.MustCompile(`^[-+]?\d+$`)
	centsTokenRe   = regexp.MustCompile(`^\d{1,2}$`)
	amountCleanRe  = regexp.MustCompile(`(?i)[r$\s\x{00a0}]`)
)

// parseRowDate converts a date token according to the descriptor's style.
func parseRowDate(raw string, style format.DateStyle) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var layout string
	switch style {
	case format.DateISO:
		layout = "2006-01-02"
	case format.DateDMY:
		layout = "02/01/2006"
	default:
		return time.Time{}, fmt.Errorf("unknown date style %q", style)
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return t, nil
}

// parseRowAmount normalizes a currency literal to a decimal: currency symbols
// and whitespace are stripped and the decimal separator becomes a dot.
func parseRowAmount(raw string, decimalComma bool) (decimal.Decimal, error) {
	cleaned := amountCleanRe.ReplaceAllString(raw, "")
	if decimalComma {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}

// extractFields pulls the raw date, amount, description and identifier cells
// out of a tokenized row, failing when a required column is absent.
func extractFields(tokens []string, cols columnIndex) (date, amount, description, identifier string, err error) {
	get := func(role format.ColumnRole) (string, bool) {
		idx, ok := cols[role]
		if !ok || idx < 0 || idx >= len(tokens) {
			return "", false
		}
		return tokens[idx], true
	}

	var ok bool
	if date, ok = get(format.RoleDate); !ok {
		return "", "", "", "", fmt.Errorf("missing required date column")
	}
	if amount, ok = get(format.RoleAmount); !ok {
		return "", "", "", "", fmt.Errorf("missing required amount column")
	}
	description, _ = get(format.RoleDescription)
	identifier, _ = get(format.RoleIdentifier)
	return date, amount, description, identifier, nil
}

// buildCandidate assembles the common parts of a candidate row. Sign handling
// is left to the caller's convention.
func buildCandidate(tokens []string, cols columnIndex, desc *format.Descriptor) (model.Transaction, decimal.Decimal, error) {
	rawDate, rawAmount, description, identifier, err := extractFields(tokens, cols)
	if err != nil {
		return model.Transaction{}, decimal.Zero, err
	}

	date, err := parseRowDate(rawDate, desc.DateStyle)
	if err != nil {
		return model.Transaction{}, decimal.Zero, err
	}

	amount, err := parseRowAmount(rawAmount, desc.DecimalComma)
	if err != nil {
		return model.Transaction{}, decimal.Zero, err
	}
	if amount.IsZero() {
		return model.Transaction{}, decimal.Zero, fmt.Errorf("zero amount")
	}

	txn := model.Transaction{
		ID:          identifier,
		Date:        date,
		Description: common.Ellipsize(strings.TrimSpace(description), 100),
		Amount:      amount.Abs(),
		Source:      model.SourceImport,
	}
	return txn, amount, nil
}

// standardInterpreter handles checking-account extracts where the literal
// sign is authoritative: positive is money in, negative is money out.
type standardInterpreter struct{}

func (standardInterpreter) InterpretRow(tokens []string, cols columnIndex, desc *format.Descriptor) (model.Transaction, error) {
	txn, signed, err := buildCandidate(tokens, cols, desc)
	if err != nil {
		return model.Transaction{}, err
	}

	switch {
	case matchesIncomeKeyword(txn.Description):
		txn.Type = model.TypeIncome
	case signed.IsNegative():
		txn.Type = model.TypeExpense
	default:
		txn.Type = model.TypeIncome
	}
	return txn, nil
}

// invertedInterpreter handles credit-card exports such as Nubank's, which
// invert the usual convention: a positive amount is a purchase (expense) and
// a negative amount is a payment or refund flowing back in.
type invertedInterpreter struct{}

func (invertedInterpreter) InterpretRow(tokens []string, cols columnIndex, desc *format.Descriptor) (model.Transaction, error) {
	txn, signed, err := buildCandidate(tokens, cols, desc)
	if err != nil {
		return model.Transaction{}, err
	}

	switch {
	case matchesIncomeKeyword(txn.Description):
		txn.Type = model.TypeIncome
	case signed.IsPositive():
		txn.Type = model.TypeExpense
	default:
		txn.Type = model.TypeIncome
	}
	return txn, nil
}

// genericInterpreter handles the fallback layout. It repairs amount cells
// that an unquoted decimal comma split across two tokens, then delegates to
// the descriptor's sign convention.
type genericInterpreter struct {
	base RowInterpreter
}

func (g genericInterpreter) InterpretRow(tokens []string, cols columnIndex, desc *format.Descriptor) (model.Transaction, error) {
	tokens, cols = repairSplitAmount(tokens, cols, desc)
	return g.base.InterpretRow(tokens, cols, desc)
}

// repairSplitAmount re-joins an amount cell broken by an unquoted decimal
// comma: an integer token followed by a one-or-two digit cents token, with
// exactly one more token than the layout expects. Merging the two restores
// the descriptor's column positions for the rest of the row.
func repairSplitAmount(tokens []string, cols columnIndex, desc *format.Descriptor) ([]string, columnIndex) {
	amountIdx, ok := cols[format.RoleAmount]
	if !ok || amountIdx < 0 {
		return tokens, cols
	}
	if len(tokens) != len(desc.Columns)+1 || amountIdx+1 >= len(tokens) {
		return tokens, cols
	}
	if !integerTokenRe.MatchString(tokens[amountIdx]) || !centsTokenRe.MatchString(tokens[amountIdx+1]) {
		return tokens, cols
	}

	separator := "."
	if desc.DecimalComma {
		separator = ","
	}

	merged := make([]string, 0, len(tokens)-1)
	merged = append(merged, tokens[:amountIdx]...)
	merged = append(merged, tokens[amountIdx]+separator+tokens[amountIdx+1])
	merged = append(merged, tokens[amountIdx+2:]...)

	return merged, cols
}
