package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(path string) bool {
	return hasExt(path, ".xlsx", ".xlsm", ".xltx", ".xltm")
}

// Read returns the raw cell values of the workbook's first sheet. Boolean
// cells come back as "true"/"false" and date-formatted cells as ISO
// timestamps, so neither is mistaken for a number.
func (xlsxReader) Read(path string) (string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, ErrEmptySheet
	}
	first := sheets[0]
	rows, err := f.GetRows(first, excelize.Options{RawCellValue: true})
	if err != nil {
		return first, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	dates := dateStyles{f: f, seen: map[int]bool{}}
	for r, row := range rows {
		// The header row keeps its text as is.
		if r == 0 {
			continue
		}
		for c, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return first, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
			}
			row[c], err = typedValue(f, first, cell, v, dates)
			if err != nil {
				return first, nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, cell, err)
			}
		}
	}
	return first, rows, nil
}

// typedValue rewrites a raw cell value according to the cell's type and
// number format.
func typedValue(f *excelize.File, sheet, cell, raw string, dates dateStyles) (string, error) {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return "", err
	}
	switch typ {
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return "true", nil
		}
		return "false", nil
	case excelize.CellTypeDate:
		return raw, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		style, err := f.GetCellStyle(sheet, cell)
		if err != nil {
			return "", err
		}
		if !dates.isDate(style) {
			return raw, nil
		}
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw, nil
		}
		return serialTime(serial)
	}
	return raw, nil
}

// serialTime formats an Excel date serial as "2006-01-02", adding the time of
// day when it has one.
func serialTime(serial float64) (string, error) {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", err
	}
	if serial == math.Trunc(serial) {
		return t.Format("2006-01-02"), nil
	}
	return t.Format("2006-01-02 15:04:05"), nil
}

// dateStyles caches whether a style index carries a date or time format.
type dateStyles struct {
	f    *excelize.File
	seen map[int]bool
}

func (d dateStyles) isDate(style int) bool {
	if style == 0 {
		return false
	}
	if v, ok := d.seen[style]; ok {
		return v
	}
	v := false
	if s, err := d.f.GetStyle(style); err == nil && s != nil {
		v = isDateNumFmt(s.NumFmt)
		if s.CustomNumFmt != nil {
			v = isDateFormatCode(*s.CustomNumFmt)
		}
	}
	d.seen[style] = v
	return v
}

// isDateNumFmt reports whether a built-in number format id is a date or time
// format.
func isDateNumFmt(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a custom format code uses date or time
// tokens outside quoted literals and bracketed sections.
func isDateFormatCode(code string) bool {
	if strings.EqualFold(code, "general") {
		return false
	}
	var b strings.Builder
	quoted, bracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydmhs")
}
