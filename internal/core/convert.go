package core

// convert.go turns raw CSV cells into comparable keys.
//
// Two cells that spell the same quantity differently ("1,000" and "1000",
// "2024-01-05" and "1/5/2024", "yes" and "TRUE") must count as the same
// element when frequencies are tallied, so every known cell of a column is
// parsed through the pgtype converter for the column's inferred type and
// rendered back into a canonical text key.

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot controls how far into the future a two-digit year may land
// before it is moved back a century.
var TwoDigitYearPivot = 20

var (
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

// ToPgText converts a string to pgtype.Text. Blank input is invalid.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate parses s with the supported layouts. Four-digit layouts win over
// two-digit ones.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{}
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	pivot := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivot {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{}
}

// normalizeNumeric strips currency symbols and thousands separators and turns
// accounting negatives "(12.50)" into "-12.50". ok is false when the result is
// not a plain decimal or scientific literal.
func normalizeNumeric(s string) (string, bool) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)
	if negative {
		s = "-" + s
	}
	return s, numericRegex.MatchString(s)
}

// ToPgNumeric converts a string to pgtype.Numeric after normalizeNumeric.
func ToPgNumeric(s string) pgtype.Numeric {
	norm, ok := normalizeNumeric(s)
	if !ok {
		return pgtype.Numeric{}
	}
	var n pgtype.Numeric
	if err := n.Scan(norm); err != nil {
		return pgtype.Numeric{}
	}
	return n
}

// ToPgBool accepts true/false, yes/no, t/f, y/n and 1/0 in any case.
func ToPgBool(s string) pgtype.Bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{}
	}
}

// ToPgUUID parses s as a UUID. Empty or malformed input is invalid.
func ToPgUUID(s string) pgtype.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// PgUUIDToString returns "" for an invalid UUID.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// MakeHeaderIndex maps lowercased, cleaned header names to their position.
// The first occurrence of a duplicated name wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell trims whitespace, the Excel formula wrapper (="...") and
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// InferFieldType picks the narrowest type every cell parses as, trying bool,
// numeric and date in that order. No cells at all is FieldText.
func InferFieldType(cells []string) FieldType {
	if len(cells) == 0 {
		return FieldText
	}
	for _, ft := range []FieldType{FieldBool, FieldNumeric, FieldDate} {
		all := true
		for _, c := range cells {
			if _, ok := CanonicalCell(ft, c); !ok {
				all = false
				break
			}
		}
		if all {
			return ft
		}
	}
	return FieldText
}

// CanonicalCell renders cell as the comparison key for ft. ok is false when the
// cell does not parse as ft.
func CanonicalCell(ft FieldType, cell string) (string, bool) {
	switch ft {
	case FieldBool:
		b := ToPgBool(cell)
		if !b.Valid {
			return "", false
		}
		return strconv.FormatBool(b.Bool), true

	case FieldNumeric:
		n := ToPgNumeric(cell)
		if !n.Valid {
			return "", false
		}
		return numericKey(n)

	case FieldDate:
		d := ToPgDate(cell)
		if !d.Valid {
			return "", false
		}
		return d.Time.Format(time.DateOnly), true

	default:
		return cell, true
	}
}

// numericKey renders n as a plain decimal with trailing zeros removed, so
// "1000", "1,000" and "1000.00" share a key while values that differ in any
// digit never do.
func numericKey(n pgtype.Numeric) (string, bool) {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return "", false
	}
	if n.Int.Sign() == 0 {
		return "0", true
	}

	digits := new(big.Int).Abs(n.Int)
	exp := int(n.Exp)
	ten := big.NewInt(10)
	for exp < 0 {
		q, r := new(big.Int).QuoRem(digits, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		digits = q
		exp++
	}

	var b strings.Builder
	if n.Int.Sign() < 0 {
		b.WriteByte('-')
	}
	text := digits.String()
	switch {
	case exp >= 0:
		b.WriteString(text)
		b.WriteString(strings.Repeat("0", exp))
	case len(text) > -exp:
		b.WriteString(text[:len(text)+exp])
		b.WriteByte('.')
		b.WriteString(text[len(text)+exp:])
	default:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-len(text)))
		b.WriteString(text)
	}
	return b.String(), true
}
