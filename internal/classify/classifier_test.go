package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olumendes/capital5/internal/model"
)

func TestClassify(t *testing.T) {
	classifier := NewDefaultClassifier()

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "ride hailing", description: "Uber Trip Help.u", want: "transporte"},
		{name: "food delivery", description: "IFOOD *RESTAURANTE", want: "alimentacao"},
		{name: "accents ignored", description: "FARMÁCIA SÃO PAULO", want: "saude"},
		{name: "salary", description: "Transferência recebida - Empresa", want: "salario"},
		{name: "streaming", description: "NETFLIX.COM", want: "lazer"},
		{name: "card bill", description: "Pagamento de fatura", want: "servicos"},
		{name: "no match falls back", description: "ZZZZ DESCONHECIDO", want: FallbackExpense},
		{name: "empty description falls back", description: "", want: FallbackExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.description))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	classifier := NewDefaultClassifier()

	first := classifier.Classify("Uber Trip")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, classifier.Classify("Uber Trip"))
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	classifier := NewDefaultClassifier()

	// "mercado livre" must win over the broader "mercado" food keyword, and
	// only because the online-stores rule is listed first.
	assert.Equal(t, "compras", classifier.Classify("MERCADO LIVRE*COMPRA"))
	assert.Equal(t, "alimentacao", classifier.Classify("MERCADO CENTRAL"))

	// Income phrases are listed before everything else, so a received Pix
	// mentioning a merchant still lands in salario.
	assert.Equal(t, "salario", classifier.Classify("Pix recebido - Restaurante Bom Prato"))
}

func TestClassifyFirstKeywordWins(t *testing.T) {
	rules := []Rule{
		{Name: "a", CategoryID: "cat-a", Keywords: []string{"alpha"}},
		{Name: "b", CategoryID: "cat-b", Keywords: []string{"alpha", "beta"}},
	}
	classifier := NewClassifier(rules, nil)

	assert.Equal(t, "cat-a", classifier.Classify("ALPHA BETA"))
	assert.Equal(t, "cat-b", classifier.Classify("only beta here"))
}

func TestClassifyTyped(t *testing.T) {
	classifier := NewDefaultClassifier()

	t.Run("matching type keeps the rule category", func(t *testing.T) {
		assert.Equal(t, "transporte", classifier.ClassifyTyped("Uber Trip", model.TypeExpense))
		assert.Equal(t, "salario", classifier.ClassifyTyped("Pix recebido", model.TypeIncome))
	})

	t.Run("type mismatch collapses to the matching fallback", func(t *testing.T) {
		// An Uber refund is income; transporte is an expense category.
		assert.Equal(t, FallbackIncome, classifier.ClassifyTyped("Uber Trip", model.TypeIncome))
		// A salary keyword on an expense collapses the other way.
		assert.Equal(t, FallbackExpense, classifier.ClassifyTyped("Salario adiantado devolvido", model.TypeExpense))
	})

	t.Run("no match uses the direction fallback", func(t *testing.T) {
		assert.Equal(t, FallbackExpense, classifier.ClassifyTyped("ZZZZ", model.TypeExpense))
		assert.Equal(t, FallbackIncome, classifier.ClassifyTyped("ZZZZ", model.TypeIncome))
	})
}

func TestDefaultRulesTargetKnownCategories(t *testing.T) {
	known := make(map[string]bool)
	for _, cat := range model.DefaultCategories() {
		known[cat.ID] = true
	}

	for _, rule := range DefaultRules() {
		require.Truef(t, known[rule.CategoryID],
			"rule %q targets unknown category %q", rule.Name, rule.CategoryID)
		assert.NotEmpty(t, rule.Keywords)
	}
}
