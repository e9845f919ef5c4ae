// Package analysis derives descriptive statistics from a loaded dataset.
package analysis

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/sheetstat/internal/dataset"
)

// Statistic row labels, in display order.
const (
	Count = "count"
	Mean  = "mean"
	Std   = "std"
	Min   = "min"
	Q25   = "25%"
	Q50   = "50%"
	Q75   = "75%"
	Max   = "max"
)

// Kinds lists the statistics computed for every numeric field.
var Kinds = []string{Count, Mean, Std, Min, Q25, Q50, Q75, Max}

// Table holds one row per statistic and one column per numeric field.
// A Table is built in one pass by Describe and never updated afterwards.
type Table struct {
	DatasetID string
	Source    string
	Rows      int
	Stats     []string
	Fields    []string
	Values    [][]float64 // Values[stat][field]
}

// Describe computes count, mean, sample std, min, quartiles and max over the
// non-missing values of each numeric column. Boolean and text columns are left
// out. The result depends only on ds.
func Describe(ds *dataset.Dataset) *Table {
	fields := ds.NumericColumns()
	t := &Table{
		DatasetID: ds.ID,
		Source:    ds.Name(),
		Rows:      ds.Rows(),
		Stats:     append([]string(nil), Kinds...),
		Fields:    fields,
		Values:    make([][]float64, len(Kinds)),
	}
	for i := range t.Values {
		t.Values[i] = make([]float64, len(fields))
	}
	for j, name := range fields {
		// NumericColumns only lists columns Floats can read.
		vals, _ := ds.Floats(name)
		col := summarize(vals)
		for i := range Kinds {
			t.Values[i][j] = col[i]
		}
	}
	return t
}

// summarize returns the statistics for one column in Kinds order.
func summarize(vals []float64) []float64 {
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	out := make([]float64, len(Kinds))
	n := len(present)
	out[0] = float64(n)
	if n == 0 {
		for i := 1; i < len(out); i++ {
			out[i] = math.NaN()
		}
		return out
	}
	s := series.Floats(present)
	out[1] = s.Mean()
	out[2] = math.NaN()
	if n > 1 {
		out[2] = s.StdDev()
	}
	sorted := append([]float64(nil), present...)
	sort.Float64s(sorted)
	out[3] = s.Min()
	out[4] = quantile(sorted, 0.25)
	out[5] = quantile(sorted, 0.5)
	out[6] = quantile(sorted, 0.75)
	out[7] = s.Max()
	return out
}

// Value returns one cell of the table.
func (t *Table) Value(stat, field string) (float64, bool) {
	i := indexOf(t.Stats, stat)
	j := indexOf(t.Fields, field)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Values[i][j], true
}

// Column returns the statistics of one field in Stats order.
func (t *Table) Column(field string) ([]float64, bool) {
	j := indexOf(t.Fields, field)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Stats))
	for i := range t.Stats {
		out[i] = t.Values[i][j]
	}
	return out, true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
