package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tabviz/tabviz/internal/domain"
)

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// isNullToken reports whether a raw cell should be treated as null.
func isNullToken(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

// inferColumn classifies a raw string column and converts its values.
// Classification tries, in order: numeric, boolean, datetime, then
// currency-coerced numeric, falling back to categorical text. A column
// only adopts a type when every non-null cell conforms.
func inferColumn(name string, raw []string) domain.Column {
	nonNull := 0
	numeric, boolean, datetime := true, true, true
	for _, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		nonNull++
		if numeric {
			_, ok := parseNumeric(cell)
			numeric = ok
		}
		if boolean {
			_, ok := parseBool(cell)
			boolean = ok
		}
		if datetime {
			_, ok := parseDatetime(cell)
			datetime = ok
		}
	}

	switch {
	case nonNull == 0:
		return textColumn(name, raw)
	case numeric:
		return numericColumn(name, raw, false)
	case boolean:
		return boolColumn(name, raw)
	case datetime:
		return datetimeColumn(name, raw)
	}

	// Currency cleanup: a text column where at least one cleaned cell
	// parses as a number is coerced to numeric, unparseable cells
	// becoming null. Matches the ingestion-time cleanup contract.
	coercible := 0
	for _, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		if _, ok := parseNumeric(cleanCurrency(cell)); ok {
			coercible++
		}
	}
	if coercible > 0 {
		return numericColumn(name, raw, true)
	}

	return textColumn(name, raw)
}

func numericColumn(name string, raw []string, cleaned bool) domain.Column {
	values := make([]any, len(raw))
	for i, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		if cleaned {
			cell = cleanCurrency(cell)
		}
		if v, ok := parseNumeric(cell); ok {
			values[i] = v
		}
	}
	return domain.Column{Name: name, DType: domain.DTypeNumeric, Values: values}
}

func boolColumn(name string, raw []string) domain.Column {
	values := make([]any, len(raw))
	for i, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		if v, ok := parseBool(cell); ok {
			values[i] = v
		}
	}
	return domain.Column{Name: name, DType: domain.DTypeBoolean, Values: values}
}

func datetimeColumn(name string, raw []string) domain.Column {
	values := make([]any, len(raw))
	for i, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		if v, ok := parseDatetime(cell); ok {
			values[i] = v
		}
	}
	return domain.Column{Name: name, DType: domain.DTypeDatetime, Values: values}
}

func textColumn(name string, raw []string) domain.Column {
	values := make([]any, len(raw))
	for i, cell := range raw {
		if isNullToken(cell) {
			continue
		}
		values[i] = cell
	}
	return domain.Column{Name: name, DType: domain.DTypeCategorical, Values: values}
}

// parseNumeric parses a float, rejecting NaN and infinities so they
// become nulls instead of poisoning downstream aggregates.
func parseNumeric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseDatetime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cleanCurrency strips dollar signs, thousands separators and interior
// spaces ahead of a numeric parse.
func cleanCurrency(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
