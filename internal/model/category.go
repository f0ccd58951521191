package model

// Category is one bucket in the classification taxonomy. The default set is
// fixed at startup; user-defined categories are appended after it.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Type      TransactionType `json:"type"`
	IsDefault bool            `json:"isDefault"`
}

// DefaultCategories returns the built-in taxonomy. IDs are stable slugs that
// classifier rules and stored transactions reference directly.
func DefaultCategories() []Category {
	return []Category{
		{ID: "alimentacao", Name: "Alimentação", Icon: "utensils", Color: "#e76f51", Type: TypeExpense, IsDefault: true},
		{ID: "transporte", Name: "Transporte", Icon: "car", Color: "#2a9d8f", Type: TypeExpense, IsDefault: true},
		{ID: "lazer", Name: "Lazer", Icon: "film", Color: "#9b5de5", Type: TypeExpense, IsDefault: true},
		{ID: "servicos", Name: "Serviços e Tarifas", Icon: "file-invoice", Color: "#264653", Type: TypeExpense, IsDefault: true},
		{ID: "moradia", Name: "Moradia", Icon: "home", Color: "#f4a261", Type: TypeExpense, IsDefault: true},
		{ID: "saude", Name: "Saúde", Icon: "heartbeat", Color: "#e63946", Type: TypeExpense, IsDefault: true},
		{ID: "compras", Name: "Compras", Icon: "shopping-bag", Color: "#457b9d", Type: TypeExpense, IsDefault: true},
		{ID: "educacao", Name: "Educação", Icon: "book", Color: "#00b4d8", Type: TypeExpense, IsDefault: true},
		{ID: "outros", Name: "Outros", Icon: "ellipsis-h", Color: "#8d99ae", Type: TypeExpense, IsDefault: true},
		{ID: "salario", Name: "Salário", Icon: "money-bill", Color: "#2b9348", Type: TypeIncome, IsDefault: true},
		{ID: "investimentos", Name: "Rendimentos", Icon: "chart-line", Color: "#55a630", Type: TypeIncome, IsDefault: true},
		{ID: "outras-receitas", Name: "Outras Receitas", Icon: "coins", Color: "#80b918", Type: TypeIncome, IsDefault: true},
	}
}
