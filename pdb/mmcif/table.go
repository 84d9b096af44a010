package mmcif

import (
	"fmt"
	"slices"
	"strconv"
)

// Col gives the index of a column or -1.
func (t *Table) Col(name string) int {
	return slices.Index(t.Names, name)
}

// Str returns one value from the table. A dot or question mark comes
// back as the empty string.
func (t *Table) Str(row int, name string) (string, error) {
	i := t.Col(name)
	if i < 0 {
		return "", fmt.Errorf("no column %s in table", name)
	}
	if row < 0 || row >= len(t.Vals) {
		return "", fmt.Errorf("row %d out of range, table has %d", row, len(t.Vals))
	}
	s := t.Vals[row][i]
	if s == "." || s == "?" {
		return "", nil
	}
	return s, nil
}

// Float is like Str, but converts the value.
func (t *Table) Float(row int, name string) (float64, error) {
	s, err := t.Str(row, name)
	if err != nil {
		return 0, err
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s row %d: %w", name, row, err)
	}
	return x, nil
}
