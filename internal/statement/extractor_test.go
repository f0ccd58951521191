package statement

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

func TestExtractSingleLineGroups(t *testing.T) {
	extractor := NewExtractor()

	t.Run("payment line with explicit plus sign is income", func(t *testing.T) {
		text := "10/06/2025 Pagamento Da Fatura + R$ 232,75\n"

		txns, err := extractor.Extract(text, "fatura.pdf")
		require.NoError(t, err)
		require.Len(t, txns, 1)

		txn := txns[0]
		assert.Equal(t, model.TypeIncome, txn.Type)
		assert.Equal(t, "2025-06-10", txn.Date.Format(model.DateLayout))
		assert.Equal(t, "Pagamento Da Fatura", txn.Description)
		assert.True(t, txn.Amount.Equal(decimal.RequireFromString("232.75")),
			"amount = %s", txn.Amount)
		assert.Equal(t, model.SourceImport, txn.Source)
		require.NotNil(t, txn.SourceDetails)
		assert.Equal(t, "fatura.pdf", txn.SourceDetails.FileName)
	})

	t.Run("unsigned amount defaults to expense", func(t *testing.T) {
		text := "12/06/2025 IFOOD RESTAURANTE R$ 54,90\n"

		txns, err := extractor.Extract(text, "fatura.pdf")
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, model.TypeExpense, txns[0].Type)
		assert.Equal(t, "IFOOD RESTAURANTE", txns[0].Description)
	})

	t.Run("payment-received phrase is income without a sign", func(t *testing.T) {
		text := "15/06/2025 Pagamento recebido R$ 1.591,93\n"

		txns, err := extractor.Extract(text, "fatura.pdf")
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, model.TypeIncome, txns[0].Type)
		assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("1591.93")))
	})
}

func TestExtractForwardWindow(t *testing.T) {
	extractor := NewExtractor()

	t.Run("amount a few lines below the date", func(t *testing.T) {
		text := "15/06/2025\nNETFLIX.COM\nASSINATURA MENSAL\nR$ 39,90\n"

		txns, err := extractor.Extract(text, "fatura.pdf")
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "NETFLIX.COM ASSINATURA MENSAL", txns[0].Description)
		assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("39.90")))
		assert.Equal(t, model.TypeExpense, txns[0].Type)
	})

	t.Run("window ends before an amount too far down", func(t *testing.T) {
		text := "15/06/2025\nlinha um\nlinha dois\nlinha tres\nR$ 39,90\n"

		_, err := extractor.Extract(text, "fatura.pdf")
		assert.True(t, errors.Is(err, common.ErrNoTransactions))
	})

	t.Run("a new date line closes the previous group", func(t *testing.T) {
		text := "01/06/2025 Sem valor nesta linha\n" +
			"02/06/2025 MERCADO CENTRAL R$ 120,00\n"

		txns, err := extractor.Extract(text, "fatura.pdf")
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "2025-06-02", txns[0].Date.Format(model.DateLayout))
		assert.Equal(t, "MERCADO CENTRAL", txns[0].Description)
	})
}

func TestExtractDeduplicatesRepeatedGroups(t *testing.T) {
	extractor := NewExtractor()

	// Statement footers often repeat the transaction table verbatim.
	text := "10/06/2025 UBER TRIP R$ 24,90\n" +
		"alguma outra linha\n" +
		"10/06/2025 UBER TRIP R$ 24,90\n"

	txns, err := extractor.Extract(text, "fatura.pdf")
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestExtractStructuralErrors(t *testing.T) {
	extractor := NewExtractor()

	t.Run("blank text is unreadable", func(t *testing.T) {
		_, err := extractor.Extract("   \n\t\n", "protected.pdf")
		assert.True(t, errors.Is(err, common.ErrUnreadableStatement))
	})

	t.Run("text without transactions", func(t *testing.T) {
		_, err := extractor.Extract("Resumo da fatura\nTotal a pagar\n", "fatura.pdf")
		assert.True(t, errors.Is(err, common.ErrNoTransactions))
	})

	t.Run("zero amounts are ignored", func(t *testing.T) {
		_, err := extractor.Extract("10/06/2025 AJUSTE R$ 0,00\n", "fatura.pdf")
		assert.True(t, errors.Is(err, common.ErrNoTransactions))
	})
}

type fakePages struct {
	pages []string
	fail  int
}

func (f *fakePages) PageCount() int { return len(f.pages) }

func (f *fakePages) PageText(_ context.Context, page int) (string, error) {
	if f.fail > 0 && page == f.fail {
		return "", fmt.Errorf("corrupt page stream")
	}
	return f.pages[page], nil
}

func TestExtractPages(t *testing.T) {
	extractor := NewExtractor()

	t.Run("concatenates pages before scanning", func(t *testing.T) {
		src := &fakePages{pages: []string{
			"10/06/2025 UBER TRIP R$ 24,90",
			"11/06/2025 PADARIA R$ 12,50",
		}}

		txns, err := extractor.ExtractPages(context.Background(), src, "fatura.pdf")
		require.NoError(t, err)
		assert.Len(t, txns, 2)
	})

	t.Run("page read failure aborts with context", func(t *testing.T) {
		src := &fakePages{pages: []string{"a", "b"}, fail: 1}

		_, err := extractor.ExtractPages(context.Background(), src, "fatura.pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page 2")
	})

	t.Run("cancelled context stops page iteration", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		src := &fakePages{pages: []string{"10/06/2025 UBER TRIP R$ 24,90"}}
		_, err := extractor.ExtractPages(ctx, src, "fatura.pdf")
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLineHelpers(t *testing.T) {
	t.Run("beforeAmount trims at the currency token", func(t *testing.T) {
		assert.Equal(t, "UBER TRIP", beforeAmount("UBER TRIP R$ 24,90"))
		assert.Equal(t, "sem valor", beforeAmount("sem valor"))
	})

	t.Run("payment phrases are diacritics-blind", func(t *testing.T) {
		assert.True(t, isPaymentReceived("Crédito Recebido"))
		assert.True(t, isPaymentReceived("ESTORNO COMPRA"))
		assert.False(t, isPaymentReceived("UBER TRIP"))
	})
}
