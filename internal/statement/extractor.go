// Package statement reconstructs transactions from the linearized text of a
// credit-card or bank statement. The text layer is extracted upstream; this
// is heuristic line segmentation, not layout parsing.
package statement

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
	"github.com/olumendes/capital5/internal/service"
)

// forwardWindow bounds how many lines after a date line are scanned for the
// amount before giving up on that group.
const forwardWindow = 3

var (
	dateLineRe = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{4})\b`)
	amountRe   = regexp.MustCompile(`([-+]?)\s*R\$\s*([\d.]*\d,\d{2})`)
)

// Extractor scans statement text for {date, description, amount} groups.
type Extractor struct{}

// NewExtractor creates a statement text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages reads every page from the document text layer and extracts
// candidates from the concatenated text. Page decoding is the suspension
// point, so the context is checked before each page.
func (e *Extractor) ExtractPages(ctx context.Context, src service.PageTextSource, fileName string) ([]model.Transaction, error) {
	var pages []string
	for page := 0; page < src.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := src.PageText(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", page+1, err)
		}
		pages = append(pages, text)
	}
	return e.Extract(strings.Join(pages, "\n"), fileName)
}

// Extract scans the full statement text. An empty text is an unreadable
// source (password-protected or image-only); text with no recognizable
// transactions is reported distinctly.
func (e *Extractor) Extract(text, fileName string) ([]model.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrUnreadableStatement
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var candidates []model.Transaction
	seen := make(map[string]bool)

	for i := 0; i < len(lines); i++ {
		dateMatch := dateLineRe.FindStringSubmatch(lines[i])
		if dateMatch == nil {
			continue
		}

		date, err := time.Parse("02/01/2006", dateMatch[1])
		if err != nil {
			continue
		}

		remainder := strings.TrimSpace(lines[i][len(dateMatch[0]):])
		txn, ok := e.scanGroup(date, remainder, lines, i)
		if !ok {
			continue
		}

		// Statement line wrapping often repeats a group verbatim; keep the
		// first occurrence only.
		key := fmt.Sprintf("%s|%s|%s", txn.Date.Format(model.DateLayout), txn.Description, txn.Amount.StringFixed(2))
		if seen[key] {
			continue
		}
		seen[key] = true

		txn.ID = uuid.NewString()
		txn.Source = model.SourceImport
		txn.SourceDetails = &model.SourceDetails{FileName: fileName}
		candidates = append(candidates, txn)
	}

	if len(candidates) == 0 {
		return nil, common.ErrNoTransactions
	}

	slog.Debug("extracted statement candidates", "file", fileName, "count", len(candidates))
	return candidates, nil
}

// scanGroup looks for the amount belonging to a date context: first in the
// remainder of the date line, then in a bounded window of following lines.
// Another date line ends the group early, since it starts the next one.
func (e *Extractor) scanGroup(date time.Time, remainder string, lines []string, dateIdx int) (model.Transaction, bool) {
	if txn, ok := e.buildFromLine(date, remainder, beforeAmount(remainder)); ok {
		return txn, true
	}

	description := remainder
	for j := dateIdx + 1; j <= dateIdx+forwardWindow && j < len(lines); j++ {
		if dateLineRe.MatchString(lines[j]) {
			break
		}
		line := strings.TrimSpace(lines[j])
		if txn, ok := e.buildFromLine(date, line, strings.TrimSpace(description+" "+beforeAmount(line))); ok {
			return txn, true
		}
		description = strings.TrimSpace(description + " " + line)
	}

	return model.Transaction{}, false
}

// buildFromLine turns a line containing a currency token into a candidate,
// using description as the accumulated text preceding the amount.
func (e *Extractor) buildFromLine(date time.Time, line, description string) (model.Transaction, bool) {
	m := amountRe.FindStringSubmatch(line)
	if m == nil {
		return model.Transaction{}, false
	}

	raw := strings.ReplaceAll(m[2], ".", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsZero() {
		return model.Transaction{}, false
	}

	txnType := model.TypeExpense
	if m[1] == "+" || isPaymentReceived(description) {
		txnType = model.TypeIncome
	}

	return model.Transaction{
		Date:        date,
		Description: common.Ellipsize(strings.TrimSpace(description), 100),
		Amount:      amount,
		Type:        txnType,
	}, true
}

// beforeAmount returns the text of a line up to its currency token.
func beforeAmount(line string) string {
	loc := amountRe.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return strings.TrimSpace(line[:loc[0]])
}

var paymentReceivedPhrases = []string{
	"pagamento recebido",
	"pagamento efetuado",
	"credito recebido",
	"estorno",
}

func isPaymentReceived(description string) bool {
	normalized := common.Normalize(description)
	for _, phrase := range paymentReceivedPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
