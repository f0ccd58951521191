// Package classify maps free-text transaction descriptions to category ids
// through an ordered keyword rule list. First match wins; the function is
// total, falling back to a catch-all bucket.
package classify

// Rule binds a keyword set to a category id. Rules are evaluated in slice
// order against normalized text, so overlapping keyword sets (e.g. "mercado
// livre" vs "mercado") are disambiguated purely by position.
type Rule struct {
	Name       string   `yaml:"name"`
	CategoryID string   `yaml:"category"`
	Keywords   []string `yaml:"keywords"`
}

// Catch-all category ids returned when no rule matches.
const (
	FallbackExpense = "outros"
	FallbackIncome  = "outras-receitas"
)

// DefaultRules returns the built-in rule list. Order is load-bearing: income
// phrases come first, then the merchant whitelist that would otherwise be
// shadowed by broader food keywords.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "rendimentos",
			CategoryID: "investimentos",
			Keywords:   []string{"rendimento", "dividendo", "juros sobre capital", "resgate aplicacao"},
		},
		{
			Name:       "receitas",
			CategoryID: "salario",
			Keywords:   []string{"pagamento recebido", "transferencia recebida", "recebid", "salario", "deposito", "pix recebido"},
		},
		{
			Name:       "transporte",
			CategoryID: "transporte",
			Keywords:   []string{"uber", "99app", "99 pop", "taxi", "combustivel", "gasolina", "posto", "estacionamento", "pedagio", "metro", "onibus", "passagem"},
		},
		{
			Name:       "lojas-online",
			CategoryID: "compras",
			Keywords:   []string{"mercado livre", "mercadolivre", "amazon", "shopee", "magalu", "americanas", "aliexpress"},
		},
		{
			Name:       "alimentacao",
			CategoryID: "alimentacao",
			Keywords:   []string{"ifood", "restaurante", "lanchonete", "padaria", "supermercado", "mercado", "acougue", "pizzaria", "hamburguer", "cafeteria"},
		},
		{
			Name:       "lazer",
			CategoryID: "lazer",
			Keywords:   []string{"netflix", "spotify", "cinema", "teatro", "show", "bar", "balada", "steam", "playstation", "xbox"},
		},
		{
			Name:       "servicos",
			CategoryID: "servicos",
			Keywords:   []string{"fatura", "tarifa", "anuidade", "iof", "juros", "seguro", "boleto", "imposto", "taxa", "mensalidade"},
		},
		{
			Name:       "moradia",
			CategoryID: "moradia",
			Keywords:   []string{"aluguel", "condominio", "energia", "luz", "agua", "internet", "telefone", "gas", "iptu"},
		},
		{
			Name:       "saude",
			CategoryID: "saude",
			Keywords:   []string{"farmacia", "drogaria", "hospital", "clinica", "medico", "dentista", "laboratorio", "academia"},
		},
		{
			Name:       "educacao",
			CategoryID: "educacao",
			Keywords:   []string{"escola", "faculdade", "universidade", "curso", "livraria", "udemy"},
		},
		{
			Name:       "compras",
			CategoryID: "compras",
			Keywords:   []string{"loja", "shopping", "vestuario", "calcados", "magazine"},
		},
	}
}
