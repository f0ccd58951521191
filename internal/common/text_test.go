package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "portuguese accents", input: "Cartão de Crédito", want: "Cartao de Credito"},
		{name: "cedilla", input: "Transferência açougue", want: "Transferencia acougue"},
		{name: "no accents", input: "Uber Trip", want: "Uber Trip"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDiacritics(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "pagamento recebido", Normalize("Pagamento Recebido"))
	assert.Equal(t, "supermercado sao jose", Normalize("SUPERMERCADO SÃO JOSÉ"))
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "  uber   trip  ", want: "Uber trip"},
		{name: "drops punctuation", input: "uber *trip 12/34", want: "Uber trip 1234"},
		{name: "upper-cases first letter", input: "ifood", want: "Ifood"},
		{name: "only punctuation", input: "***", want: ""},
		{name: "keeps accented letters", input: "padaria são joão", want: "Padaria são joão"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.input))
		})
	}
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", Ellipsize("short", 10))
	assert.Equal(t, "exactly-10", Ellipsize("exactly-10", 10))
	assert.Equal(t, "toolongt…", Ellipsize("toolongtext", 9))
	assert.Equal(t, "a…", Ellipsize("abcdef", 2))

	long := Ellipsize("aaaaaaaaaabbbbbbbbbb", 15)
	assert.Len(t, []rune(long), 15)
	assert.Equal(t, "aaaaaaaaaabbbb…", long)
}
