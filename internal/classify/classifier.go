package classify

import (
	"strings"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// Classifier evaluates an ordered rule list against descriptions. It is pure:
// the same input always yields the same category id.
type Classifier struct {
	categoryTypes map[string]model.TransactionType
	rules         []Rule
}

// NewClassifier builds a classifier over the given rules and the category set
// used to validate rule targets against transaction direction.
func NewClassifier(rules []Rule, categories []model.Category) *Classifier {
	types := make(map[string]model.TransactionType, len(categories))
	for _, cat := range categories {
		types[cat.ID] = cat.Type
	}
	return &Classifier{
		rules:         rules,
		categoryTypes: types,
	}
}

// NewDefaultClassifier builds a classifier with the built-in rules and taxonomy.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules(), model.DefaultCategories())
}

// Classify returns the category id for a description. The first rule with any
// keyword contained in the normalized text wins; no scoring, no second pass.
func (c *Classifier) Classify(description string) string {
	normalized := common.Normalize(description)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(normalized, keyword) {
				return rule.CategoryID
			}
		}
	}
	return FallbackExpense
}

// ClassifyTyped classifies a description and reconciles the result with the
// transaction's direction: a category of the wrong type collapses to the
// matching catch-all, keeping the category/type invariant intact.
func (c *Classifier) ClassifyTyped(description string, txnType model.TransactionType) string {
	categoryID := c.Classify(description)
	if catType, ok := c.categoryTypes[categoryID]; ok && catType == txnType {
		return categoryID
	}
	if txnType == model.TypeIncome {
		return FallbackIncome
	}
	return FallbackExpense
}
