package tabular

import (
	"strings"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/format"
)

// columnIndex maps each semantic role to its position in the header, or -1
// when the role could not be resolved.
type columnIndex map[format.ColumnRole]int

// headerPatterns are the fallback substrings used when a descriptor's declared
// header name is absent from the file.
var headerPatterns = map[format.ColumnRole][]string{
	format.RoleDate:        {"data", "date"},
	format.RoleAmount:      {"valor", "amount"},
	format.RoleDescription: {"descri", "historic", "lancamento", "title"},
	format.RoleIdentifier:  {"identificador", "id"},
}

// resolveColumns locates each role the descriptor expects inside the actual
// header row. Matching is case-insensitive and diacritics-blind: exact name
// first, then containment either way, then the generic header patterns.
func resolveColumns(header []string, desc *format.Descriptor) columnIndex {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = common.Normalize(h)
	}

	cols := columnIndex{}
	used := make(map[int]bool)

	claim := func(role format.ColumnRole, idx int) {
		cols[role] = idx
		used[idx] = true
	}

	for _, col := range desc.Columns {
		want := common.Normalize(col.Header)
		idx := -1
		for i, h := range normalized {
			if used[i] {
				continue
			}
			if h == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i, h := range normalized {
				if used[i] {
					continue
				}
				if h != "" && (strings.Contains(h, want) || strings.Contains(want, h)) {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			claim(col.Role, idx)
		}
	}

	// Pattern-based fallback for anything still unresolved.
	for _, role := range []format.ColumnRole{format.RoleDate, format.RoleAmount, format.RoleDescription, format.RoleIdentifier} {
		if _, ok := cols[role]; ok {
			continue
		}
		idx := -1
		for i, h := range normalized {
			if used[i] {
				continue
			}
			for _, pat := range headerPatterns[role] {
				if strings.Contains(h, pat) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx >= 0 {
			claim(role, idx)
		} else {
			cols[role] = -1
		}
	}

	return cols
}
