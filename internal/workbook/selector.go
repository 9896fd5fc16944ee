package workbook

import (
	"fmt"
	"strconv"

	apperrors "loadpv/internal/errors"
)

// Selector addresses a sheet by name or by 0-based position.
type Selector struct {
	name    string
	index   int
	byIndex bool
}

// ByName selects the sheet with exactly this name.
func ByName(name string) Selector {
	return Selector{name: name}
}

// ByIndex selects the sheet at position i in declared order.
func ByIndex(i int) Selector {
	return Selector{index: i, byIndex: true}
}

// String renders the selector for error messages.
func (s Selector) String() string {
	if s.byIndex {
		return "index " + strconv.Itoa(s.index)
	}
	return strconv.Quote(s.name)
}

// resolve maps the selector to a sheet name from names.
func (s Selector) resolve(names []string) (string, error) {
	if s.byIndex {
		if s.index < 0 || s.index >= len(names) {
			return "", apperrors.NewSheetNotFoundError(s.String(), names)
		}
		return names[s.index], nil
	}

	for _, n := range names {
		if n == s.name {
			return n, nil
		}
	}
	return "", apperrors.NewSheetNotFoundError(s.String(), names)
}

// SelectorFor builds a selector from an optional name and a fallback index.
func SelectorFor(name string, index int) Selector {
	if name != "" {
		return ByName(name)
	}
	return ByIndex(index)
}

// GoString makes selectors readable in test failure output.
func (s Selector) GoString() string {
	if s.byIndex {
		return fmt.Sprintf("workbook.ByIndex(%d)", s.index)
	}
	return fmt.Sprintf("workbook.ByName(%q)", s.name)
}
