package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DefaultPrecision is the number of significant digits used when rendering.
const DefaultPrecision = 6

// FormatValue renders a statistic with the given number of significant digits.
func FormatValue(v float64, precision int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}

// GridOptions controls WriteGrid.
type GridOptions struct {
	Precision int
	// Selected marks each field row with a toggle box when set.
	Selected func(field string) bool
	// Cursor is the field whose row gets a pointer.
	Cursor string
}

// WriteGrid writes the table as a grid with one row per field and one column
// per statistic. The first cell of each row is the field's label, optionally
// carrying its toggle state.
func (t *Table) WriteGrid(w io.Writer, opt GridOptions) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(append([]string{"field"}, t.Stats...))
	align := make([]int, len(t.Stats)+1)
	align[0] = tablewriter.ALIGN_LEFT
	for i := 1; i < len(align); i++ {
		align[i] = tablewriter.ALIGN_RIGHT
	}
	tw.SetColumnAlignment(align)
	for j, field := range t.Fields {
		row := make([]string, 0, len(t.Stats)+1)
		row = append(row, gridLabel(field, opt))
		for i := range t.Stats {
			row = append(row, FormatValue(t.Values[i][j], opt.Precision))
		}
		tw.Append(row)
	}
	tw.Render()
}

func gridLabel(field string, opt GridOptions) string {
	label := field
	if opt.Selected != nil {
		box := "[ ] "
		if opt.Selected(field) {
			box = "[x] "
		}
		label = box + label
	}
	if opt.Cursor != "" {
		if opt.Cursor == field {
			label = "> " + label
		} else {
			label = "  " + label
		}
	}
	return label
}

// Grid returns WriteGrid output as a string.
func (t *Table) Grid(opt GridOptions) string {
	var b strings.Builder
	t.WriteGrid(&b, opt)
	return b.String()
}

// Markdown renders the table in the orientation it is stored in: statistics
// down, fields across.
func (t *Table) Markdown(precision int) string {
	var b strings.Builder
	b.WriteString("[DATASET STATISTICS]\n")
	if t.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", t.Source))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", t.Rows))
	b.WriteString(fmt.Sprintf("Numeric fields: %d\n\n", len(t.Fields)))
	if len(t.Fields) == 0 {
		b.WriteString("No numeric fields.\n")
		return b.String()
	}
	b.WriteString("| stat |")
	for _, f := range t.Fields {
		b.WriteString(" ")
		b.WriteString(safeName(f))
		b.WriteString(" |")
	}
	b.WriteString("\n|---|")
	for range t.Fields {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for i, stat := range t.Stats {
		b.WriteString("| ")
		b.WriteString(stat)
		b.WriteString(" |")
		for j := range t.Fields {
			b.WriteString(" ")
			b.WriteString(FormatValue(t.Values[i][j], precision))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

// FieldSummary is the export form of one table column. Missing and infinite
// statistics are nil so the value survives JSON encoding.
type FieldSummary struct {
	Field string   `json:"field" yaml:"field"`
	Count *float64 `json:"count" yaml:"count"`
	Mean  *float64 `json:"mean" yaml:"mean"`
	Std   *float64 `json:"std" yaml:"std"`
	Min   *float64 `json:"min" yaml:"min"`
	Q25   *float64 `json:"25%" yaml:"25%"`
	Q50   *float64 `json:"50%" yaml:"50%"`
	Q75   *float64 `json:"75%" yaml:"75%"`
	Max   *float64 `json:"max" yaml:"max"`
}

// Export is the serializable form of a Table.
type Export struct {
	Dataset string         `json:"dataset_id" yaml:"dataset_id"`
	Source  string         `json:"source,omitempty" yaml:"source,omitempty"`
	Rows    int            `json:"rows" yaml:"rows"`
	Fields  []FieldSummary `json:"fields" yaml:"fields"`
}

// Export converts the table for JSON or YAML output.
func (t *Table) Export() Export {
	out := Export{Dataset: t.DatasetID, Source: t.Source, Rows: t.Rows, Fields: make([]FieldSummary, 0, len(t.Fields))}
	for _, field := range t.Fields {
		col, _ := t.Column(field)
		fs := FieldSummary{Field: field}
		targets := []**float64{&fs.Count, &fs.Mean, &fs.Std, &fs.Min, &fs.Q25, &fs.Q50, &fs.Q75, &fs.Max}
		for i, stat := range t.Stats {
			k := indexOf(Kinds, stat)
			if k < 0 || math.IsNaN(col[i]) || math.IsInf(col[i], 0) {
				continue
			}
			v := col[i]
			*targets[k] = &v
		}
		out.Fields = append(out.Fields, fs)
	}
	return out
}
