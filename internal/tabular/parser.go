package tabular

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/format"
	"github.com/olumendes/capital5/internal/model"
)

// RowError records why one data row was skipped. Row failures never abort a
// batch; they travel alongside the successful candidates.
type RowError struct {
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
	Line   int    `json:"line"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Batch is the outcome of parsing one file: the candidates in input order and
// a parallel record of skipped rows. Ephemeral, never persisted.
type Batch struct {
	FileName   string
	FormatID   string
	Candidates []model.Transaction
	RowErrors  []RowError
}

// Parser turns delimited text into candidate transactions using the layout
// described by a registry entry.
type Parser struct {
	registry *format.Registry
}

// NewParser creates a parser over the given format registry.
func NewParser(registry *format.Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse reads the whole file content against the named format. The only
// whole-batch failure is a file too short to hold a header and a data row;
// everything else is recorded per row.
func (p *Parser) Parse(content, formatID, fileName string) (*Batch, error) {
	desc, err := p.registry.Lookup(formatID)
	if err != nil {
		return nil, err
	}
	return ParseWithDescriptor(content, desc, fileName)
}

// ParseWithDescriptor parses content against an explicit descriptor.
func ParseWithDescriptor(content string, desc *format.Descriptor, fileName string) (*Batch, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, common.ErrFileTooShort
	}

	delimiter := desc.DelimiterRune()
	header := tokenize(lines[0], delimiter)
	cols := resolveColumns(header, desc)
	interpreter := interpreterFor(desc)

	batch := &Batch{
		FileName: fileName,
		FormatID: desc.ID,
	}

	for i, line := range lines[1:] {
		lineNo := i + 2 // 1-based, after the header
		tokens := tokenize(line, delimiter)

		txn, err := interpreter.InterpretRow(tokens, cols, desc)
		if err != nil {
			batch.RowErrors = append(batch.RowErrors, RowError{
				Line:   lineNo,
				Raw:    line,
				Reason: err.Error(),
			})
			continue
		}

		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}
		txn.SourceDetails = &model.SourceDetails{
			FileName: fileName,
			BankName: desc.Name,
		}
		batch.Candidates = append(batch.Candidates, txn)
	}

	slog.Debug("parsed tabular file",
		"file", fileName,
		"format", desc.ID,
		"candidates", len(batch.Candidates),
		"row_errors", len(batch.RowErrors))

	return batch, nil
}
