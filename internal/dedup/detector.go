// Package dedup flags incoming candidates that already exist in the
// transaction set. Aggregator re-syncs return overlapping windows and no
// stable cross-source id exists, so matching is a three-factor near match:
// amount within a currency-rounding tolerance, exact calendar day, and
// approximate description similarity.
package dedup

import (
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// Detector partitions candidate batches against an existing transaction set.
type Detector struct {
	amountTolerance     decimal.Decimal
	similarityThreshold float64
}

// NewDetector creates a detector with the agreed tolerance band: one cent of
// amount slack and 0.70 description similarity.
func NewDetector() *Detector {
	return &Detector{
		amountTolerance:     decimal.NewFromFloat(0.01),
		similarityThreshold: 0.70,
	}
}

// Partition is a stable split of a candidate batch.
type Partition struct {
	Duplicates []model.Transaction
	New        []model.Transaction
}

// Partition splits candidates into duplicates and new transactions, keeping
// input order within each half. The existing set is never mutated.
func (d *Detector) Partition(candidates, existing []model.Transaction) Partition {
	cleaned := make([]string, len(existing))
	for i, txn := range existing {
		cleaned[i] = common.CleanDescription(txn.Description)
	}

	var result Partition
	for _, candidate := range candidates {
		if d.isDuplicate(candidate, existing, cleaned) {
			result.Duplicates = append(result.Duplicates, candidate)
		} else {
			result.New = append(result.New, candidate)
		}
	}
	return result
}

func (d *Detector) isDuplicate(candidate model.Transaction, existing []model.Transaction, cleaned []string) bool {
	candidateDesc := common.CleanDescription(candidate.Description)
	candidateDate := candidate.Date.Format(model.DateLayout)
	candidateAmount := candidate.Amount.Abs()

	for i, txn := range existing {
		if txn.Date.Format(model.DateLayout) != candidateDate {
			continue
		}
		if candidateAmount.Sub(txn.Amount).Abs().GreaterThan(d.amountTolerance) {
			continue
		}
		if Similarity(candidateDesc, cleaned[i]) >= d.similarityThreshold {
			return true
		}
	}
	return false
}

// Similarity is 1 - editDistance/maxLen over the two strings. Two empty
// strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes classic single-character insert/delete/substitute edit
// distance with a rolling two-row table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
