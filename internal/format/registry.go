// Package format catalogs the known bank export layouts. The registry is
// immutable after construction and injected into the parser, so tests can
// substitute custom layouts.
package format

import (
	"fmt"

	"github.com/olumendes/capital5/internal/common"
)

// BankType discriminates which row-interpretation strategy a layout uses.
type BankType string

// Known bank families.
const (
	BankGeneric BankType = "generic"
	BankNubank  BankType = "nubank"
	BankInter   BankType = "inter"
	BankItau    BankType = "itau"
	BankCaixa   BankType = "caixa"
)

// ColumnRole names the semantic meaning of a column.
type ColumnRole string

// Semantic column roles.
const (
	RoleDate        ColumnRole = "date"
	RoleAmount      ColumnRole = "amount"
	RoleDescription ColumnRole = "description"
	RoleIdentifier  ColumnRole = "identifier"
)

// DateStyle is the date-format token a layout uses.
type DateStyle string

// Supported date styles.
const (
	DateDMY DateStyle = "DD/MM/YYYY"
	DateISO DateStyle = "YYYY-MM-DD"
)

// Column pairs a semantic role with the header name the bank exports.
type Column struct {
	Role   ColumnRole `yaml:"role"`
	Header string     `yaml:"header"`
}

// Descriptor declares one bank's export layout: column order, date format,
// decimal style, delimiter, and sign convention. Immutable once registered.
type Descriptor struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Bank         BankType  `yaml:"bank"`
	Delimiter    string    `yaml:"delimiter"`
	DateStyle    DateStyle `yaml:"dateStyle"`
	DecimalComma bool      `yaml:"decimalComma"`
	// InvertedSign means a positive literal amount denotes an expense (card
	// statement convention) rather than income.
	InvertedSign bool       `yaml:"invertedSign"`
	Columns      []Column   `yaml:"columns"`
	ExampleRows  [][]string `yaml:"exampleRows,omitempty"`
}

// DelimiterRune returns the field delimiter, defaulting to a comma.
func (d *Descriptor) DelimiterRune() rune {
	if d.Delimiter == "" {
		return ','
	}
	return []rune(d.Delimiter)[0]
}

// Registry is a read-only catalog of format descriptors.
type Registry struct {
	byID map[string]*Descriptor
	ids  []string
}

// NewRegistry builds a registry from the given descriptors. Later descriptors
// with a duplicate id are rejected so a user file cannot shadow a built-in.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Descriptor, len(descriptors))}
	for i := range descriptors {
		d := descriptors[i]
		if d.ID == "" {
			return nil, fmt.Errorf("format descriptor %d has no id", i)
		}
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate format descriptor id %q", d.ID)
		}
		r.byID[d.ID] = &d
		r.ids = append(r.ids, d.ID)
	}
	return r, nil
}

// Lookup returns the descriptor for id. Unknown ids yield ErrFormatNotFound;
// fallback policy belongs to the caller, never to the registry.
func (r *Registry) Lookup(id string) (*Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrFormatNotFound, id)
	}
	return d, nil
}

// IDs returns the registered format ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// DefaultRegistry returns the built-in bank layouts plus the generic fallback.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinDescriptors()...)
	if err != nil {
		// Built-ins are static; a failure here is a programming error.
		panic(err)
	}
	return r
}

// BuiltinDescriptors returns the layouts shipped with the application.
func BuiltinDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:           "generic",
			Name:         "Genérico (CSV)",
			Bank:         BankGeneric,
			Delimiter:    ",",
			DateStyle:    DateDMY,
			DecimalComma: true,
			Columns: []Column{
				{Role: RoleDate, Header: "data"},
				{Role: RoleAmount, Header: "valor"},
				{Role: RoleIdentifier, Header: "identificador"},
				{Role: RoleDescription, Header: "descrição"},
			},
			ExampleRows: [][]string{
				{"03/06/2025", "-85,50", "tx-0001", "Uber Trip"},
				{"05/06/2025", "2500,00", "tx-0002", "Transferência recebida"},
			},
		},
		{
			ID:           "nubank",
			Name:         "Nubank (cartão de crédito)",
			Bank:         BankNubank,
			Delimiter:    ",",
			DateStyle:    DateISO,
			DecimalComma: false,
			InvertedSign: true,
			Columns: []Column{
				{Role: RoleDate, Header: "date"},
				{Role: RoleDescription, Header: "title"},
				{Role: RoleAmount, Header: "amount"},
			},
			ExampleRows: [][]string{
				{"2025-06-10", "Ifood", "54.90"},
				{"2025-06-10", "Pagamento recebido", "-1591.93"},
			},
		},
		{
			ID:           "inter",
			Name:         "Banco Inter (extrato)",
			Bank:         BankInter,
			Delimiter:    ";",
			DateStyle:    DateDMY,
			DecimalComma: true,
			Columns: []Column{
				{Role: RoleDate, Header: "Data Lançamento"},
				{Role: RoleDescription, Header: "Histórico"},
				{Role: RoleAmount, Header: "Valor"},
			},
			ExampleRows: [][]string{
				{"02/06/2025", "Pix enviado - Mercado Central", "-230,00"},
				{"06/06/2025", "Pix recebido - Cliente", "1200,00"},
			},
		},
		{
			ID:           "itau",
			Name:         "Itaú (extrato)",
			Bank:         BankItau,
			Delimiter:    ";",
			DateStyle:    DateDMY,
			DecimalComma: true,
			Columns: []Column{
				{Role: RoleDate, Header: "data"},
				{Role: RoleDescription, Header: "lançamento"},
				{Role: RoleAmount, Header: "valor"},
			},
			ExampleRows: [][]string{
				{"04/06/2025", "PAG BOLETO ENEL", "-187,45"},
				{"08/06/2025", "TED RECEBIDA", "980,00"},
			},
		},
		{
			ID:           "caixa",
			Name:         "Caixa (extrato)",
			Bank:         BankCaixa,
			Delimiter:    ";",
			DateStyle:    DateDMY,
			DecimalComma: true,
			Columns: []Column{
				{Role: RoleDate, Header: "Data Mov."},
				{Role: RoleDescription, Header: "Histórico"},
				{Role: RoleAmount, Header: "Valor"},
			},
			ExampleRows: [][]string{
				{"09/06/2025", "COMPRA DÉBITO FARMÁCIA", "-42,90"},
				{"10/06/2025", "CRÉDITO SALÁRIO", "3450,00"},
			},
		},
	}
}
