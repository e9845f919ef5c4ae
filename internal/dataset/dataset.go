// Package dataset loads the first sheet of a spreadsheet into an immutable
// column store.
package dataset

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
)

// Kind classifies a column by the values it holds.
type Kind int

const (
	Text Kind = iota
	Numeric
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Boolean:
		return "boolean"
	default:
		return "text"
	}
}

// missingValues are read as absent cells.
var missingValues = []string{"", "NA", "NaN", "<nil>"}

// Dataset is the in-memory table parsed from a file. It is never modified
// after Load returns; every accessor hands out copies.
type Dataset struct {
	// ID is unique per load, so derived values can be matched to their source.
	ID     string
	Source string
	Sheet  string

	frame dataframe.DataFrame
	index map[string]int
}

// Load reads the first sheet of the spreadsheet at path. The header row names
// the columns and every following row is data.
func Load(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, accessError(path, "stat", ErrFileNotFound)
		}
		return nil, accessError(path, "stat", fmt.Errorf("%w: %v", ErrUnreadable, err))
	}
	if info.IsDir() {
		return nil, accessError(path, "stat", fmt.Errorf("%w: is a directory", ErrUnreadable))
	}
	r := readerFor(path)
	if r == nil {
		return nil, accessError(path, "open", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path)))
	}
	sheet, records, err := r.Read(path)
	if err != nil {
		return nil, accessError(path, "read", err)
	}
	ds, err := FromRecords(records)
	if err != nil {
		return nil, accessError(path, "parse", err)
	}
	ds.Source = path
	ds.Sheet = sheet
	return ds, nil
}

// FromRecords builds a Dataset from a header record followed by data records.
func FromRecords(records [][]string) (*Dataset, error) {
	records = trimBlankRows(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrEmptySheet)
	}
	if len(records) == 1 {
		return nil, fmt.Errorf("%w: header row only", ErrEmptySheet)
	}
	header := normalizeHeader(records[0], widest(records))
	table := make([][]string, 0, len(records))
	table = append(table, header)
	for _, row := range records[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		for i := range padded {
			padded[i] = strings.TrimSpace(padded[i])
		}
		table = append(table, padded)
	}

	types := make(map[string]series.Type, len(header))
	for i, name := range header {
		types[name] = inferType(table[1:], i)
	}
	df := dataframe.LoadRecords(table,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, df.Err)
	}
	index := make(map[string]int, len(header))
	for i, name := range df.Names() {
		index[name] = i
	}
	return &Dataset{ID: uuid.NewString(), frame: df, index: index}, nil
}

// inferType classifies column col: integers, then finite floats, then
// true/false, else text. A column with no values at all is numeric.
func inferType(rows [][]string, col int) series.Type {
	ints, floats, bools, texts := 0, 0, 0, 0
	for _, row := range rows {
		v := row[col]
		if isMissing(v) {
			continue
		}
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			ints++
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) {
			floats++
			continue
		}
		switch strings.ToLower(v) {
		case "true", "false":
			bools++
			continue
		}
		texts++
	}
	switch {
	case texts > 0, bools > 0 && ints+floats > 0:
		return series.String
	case bools > 0:
		return series.Bool
	case ints > 0 && floats == 0:
		return series.Int
	default:
		return series.Float
	}
}

func isMissing(v string) bool {
	for _, m := range missingValues {
		if v == m {
			return true
		}
	}
	return false
}

// Columns returns the column names in sheet order.
func (d *Dataset) Columns() []string {
	return d.frame.Names()
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int {
	return d.frame.Nrow()
}

// Has reports whether the dataset has a column with the given name.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Kind returns the inferred kind of the named column.
func (d *Dataset) Kind(name string) (Kind, bool) {
	i, ok := d.index[name]
	if !ok {
		return Text, false
	}
	switch d.frame.Types()[i] {
	case series.Int, series.Float:
		return Numeric, true
	case series.Bool:
		return Boolean, true
	default:
		return Text, true
	}
}

// NumericColumns returns the numeric column names in sheet order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, name := range d.Columns() {
		if k, _ := d.Kind(name); k == Numeric {
			out = append(out, name)
		}
	}
	return out
}

// Series returns a copy of the named column.
func (d *Dataset) Series(name string) (series.Series, error) {
	if !d.Has(name) {
		return series.Series{}, fmt.Errorf("unknown column %q", name)
	}
	s := d.frame.Col(name)
	if s.Err != nil {
		return series.Series{}, s.Err
	}
	return s, nil
}

// Floats returns the named numeric column with missing cells as NaN.
func (d *Dataset) Floats(name string) ([]float64, error) {
	k, ok := d.Kind(name)
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if k != Numeric {
		return nil, fmt.Errorf("column %q is %s, not numeric", name, k)
	}
	s, err := d.Series(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Values returns the named column as text; missing cells are empty strings.
func (d *Dataset) Values(name string) ([]string, error) {
	s, err := d.Series(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = e.String()
	}
	return out, nil
}

// Name is the file name the dataset was loaded from.
func (d *Dataset) Name() string {
	if d.Source == "" {
		return ""
	}
	return filepath.Base(d.Source)
}

func widest(records [][]string) int {
	n := 0
	for _, r := range records {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}

// normalizeHeader names blank header cells "Unnamed: i" and suffixes duplicates
// with ".1", ".2" in order of appearance.
func normalizeHeader(raw []string, width int) []string {
	header := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = strings.TrimSpace(raw[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for seen[name] > 0 {
			name = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[name]++
		header[i] = name
	}
	return header
}

func trimBlankRows(records [][]string) [][]string {
	for len(records) > 0 && blank(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	for len(records) > 0 && blank(records[0]) {
		records = records[1:]
	}
	return records
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
