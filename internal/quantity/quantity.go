// Package quantity parses the free-text quantity strings the store keeps
// ("2", "1 cup", "1.5 kg") into a typed amount+unit pair where possible.
// Legacy data is full of strings that don't parse; those are carried through
// verbatim rather than rejected, so parse/format stays a boundary concern and
// never loses information.
package quantity

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity is an amount with an optional unit. When Parsed is false the
// value is opaque and only Raw is meaningful.
type Quantity struct {
	Amount float64
	Unit   string
	Raw    string
	Parsed bool
}

// Parse interprets a quantity string. Accepted shapes are a bare number
// ("2", "1.5") and a number followed by a unit label ("1 cup", "250 g").
// Units are opaque labels, not convertible measures. Anything else comes
// back unparsed with Raw preserved.
func Parse(s string) Quantity {
	raw := strings.TrimSpace(s)
	fields := strings.Fields(raw)
	if len(fields) == 0 || len(fields) > 2 {
		return Quantity{Raw: raw}
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Quantity{Raw: raw}
	}

	q := Quantity{Amount: amount, Raw: raw, Parsed: true}
	if len(fields) == 2 {
		q.Unit = fields[1]
	}
	return q
}

// String formats a parsed quantity with trailing zeros trimmed; unparsed
// quantities render as their raw text.
func (q Quantity) String() string {
	if !q.Parsed {
		return q.Raw
	}
	amount := strconv.FormatFloat(q.Amount, 'f', -1, 64)
	if q.Unit == "" {
		return amount
	}
	return amount + " " + q.Unit
}

// Add merges two quantities. When both parse and their units agree
// (case-insensitively, with a missing unit treated as agreeing with any),
// the amounts are summed. Otherwise the result falls back to concatenating
// the two strings with " + ", the historical merge behavior.
func Add(a, b Quantity) Quantity {
	if a.Parsed && b.Parsed {
		if unit, ok := mergeUnits(a.Unit, b.Unit); ok {
			return Quantity{Amount: a.Amount + b.Amount, Unit: unit, Parsed: true}
		}
	}
	return Quantity{Raw: fmt.Sprintf("%s + %s", a.String(), b.String())}
}

// AddStrings is the string-in, string-out convenience the reconciler uses.
func AddStrings(a, b string) string {
	return Add(Parse(a), Parse(b)).String()
}

func mergeUnits(a, b string) (string, bool) {
	switch {
	case a == "":
		return b, true
	case b == "":
		return a, true
	case strings.EqualFold(a, b):
		return a, true
	default:
		return "", false
	}
}
