// Package shell is the interactive core: a three-phase state machine that
// consumes user actions one at a time and reports each outcome as a Status.
package shell

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/sheetstat/internal/analysis"
	"github.com/KaramelBytes/sheetstat/internal/dataset"
	"github.com/KaramelBytes/sheetstat/internal/plot"
	"github.com/KaramelBytes/sheetstat/internal/selection"
)

// Phase is the shell's position in the file lifecycle.
type Phase int

const (
	NoFile Phase = iota
	FileSelected
	DataLoaded
)

func (p Phase) String() string {
	switch p {
	case FileSelected:
		return "file selected"
	case DataLoaded:
		return "data loaded"
	default:
		return "no file"
	}
}

// Action is a named user request.
type Action interface {
	name() string
}

// SelectFile chooses a new file. An empty Path means the choice was cancelled.
type SelectFile struct{ Path string }

// LoadFile parses the selected file and computes its statistics.
type LoadFile struct{}

// ToggleField flips a field's plot selection.
type ToggleField struct{ Field string }

// DrawChart draws, or redraws, the scatter plot of the first two selections.
type DrawChart struct{}

// UnloadData discards the loaded data and keeps the selected path.
type UnloadData struct{}

func (SelectFile) name() string  { return "select" }
func (LoadFile) name() string    { return "load" }
func (ToggleField) name() string { return "toggle" }
func (DrawChart) name() string   { return "draw" }
func (UnloadData) name() string  { return "unload" }

// Options configures a Shell.
type Options struct {
	Background drawing.Color
	Width      int
	Height     int
}

// Shell owns all display state. It is driven from a single goroutine.
type Shell struct {
	opts   Options
	canvas Canvas
	log    *slog.Logger

	phase Phase
	path  string
	data  *dataset.Dataset
	stats *analysis.Table
	sel   *selection.State
	fig   *plot.Figure
	last  Status
}

// New returns a shell in the NoFile phase.
func New(opts Options, canvas Canvas, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{opts: opts, canvas: canvas, log: logger, last: info("Ready")}
}

// Dispatch runs one action to completion. Every failure is turned into the
// returned Status; nothing escapes as a panic or error.
func (s *Shell) Dispatch(a Action) Status {
	var st Status
	switch act := a.(type) {
	case SelectFile:
		st = s.selectFile(act.Path)
	case LoadFile:
		st = s.load()
	case ToggleField:
		st = s.toggle(act.Field)
	case DrawChart:
		st = s.draw()
	case UnloadData:
		st = s.unload()
	default:
		st = fail(fmt.Sprintf("Unknown action %T", a), nil)
	}
	s.last = st
	attrs := []any{"action", actionName(a), "phase", s.phase.String(), "level", st.Level.String(), "message", st.Message}
	if st.Err != nil {
		attrs = append(attrs, "error", st.Err)
	}
	if st.Level == Error {
		s.log.Warn("action failed", attrs...)
	} else {
		s.log.Debug("action", attrs...)
	}
	return st
}

func actionName(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.name()
}

func (s *Shell) selectFile(path string) Status {
	s.teardown()
	s.path = strings.TrimSpace(path)
	if s.path == "" {
		s.phase = NoFile
		return warn("No file selected", nil)
	}
	s.phase = FileSelected
	return info("Data file selected.")
}

func (s *Shell) load() Status {
	switch s.phase {
	case NoFile:
		return warn("No file selected", nil)
	case DataLoaded:
		return info("Data file already loaded.")
	}
	ds, err := dataset.Load(s.path)
	if err != nil {
		return fail(fmt.Sprintf("Could not load %s: %v", s.path, unwrapAll(err)), err)
	}
	s.data = ds
	s.stats = analysis.Describe(ds)
	s.sel = selection.New(s.stats.Fields)
	s.phase = DataLoaded
	if len(s.stats.Fields) == 0 {
		return warn("Data file loaded. No numeric fields to describe.", nil)
	}
	return info("Data file loaded.")
}

func (s *Shell) toggle(field string) Status {
	if s.phase != DataLoaded {
		return warn("No data loaded", nil)
	}
	on, err := s.sel.Toggle(field)
	if err != nil {
		return fail(err.Error(), err)
	}
	if on {
		return info(fmt.Sprintf("Selected %s (%d selected)", field, s.sel.Count()))
	}
	return info(fmt.Sprintf("Deselected %s (%d selected)", field, s.sel.Count()))
}

func (s *Shell) draw() Status {
	if s.phase != DataLoaded {
		return warn("No data loaded", nil)
	}
	pair, ignored, err := s.sel.Pair()
	if err != nil {
		return warn("Not enough fields were selected. Please select at least 2.", err)
	}
	fig := s.fig
	if fig == nil {
		fig = plot.NewFigure(s.opts.Width, s.opts.Height)
	}
	if err := fig.Scatter(s.data, pair.X, pair.Y, s.opts.Background); err != nil {
		var fe *plot.FieldNotFoundError
		if errors.As(err, &fe) {
			return fail(fmt.Sprintf("Selected field %q is missing from the data; chart not drawn", fe.Field), err)
		}
		return fail(fmt.Sprintf("Chart not drawn: %v", err), err)
	}
	if s.canvas != nil {
		if err := s.canvas.Paint(fig); err != nil {
			return fail(fmt.Sprintf("Chart drawn but not displayed: %v", err), err)
		}
	}
	s.fig = fig
	if len(ignored) > 0 {
		return warn(fmt.Sprintf("More than 2 fields were selected. The plot uses the first two: %s.", fig.Title()), nil)
	}
	return info("Chart drawn: " + fig.Title())
}

func (s *Shell) unload() Status {
	if s.phase != DataLoaded {
		return warn("No data loaded", nil)
	}
	s.teardown()
	s.phase = FileSelected
	return info("Data unloaded.")
}

// teardown drops the dataset, statistics, selection and figure together.
func (s *Shell) teardown() {
	if s.fig != nil && s.canvas != nil {
		if err := s.canvas.Reset(); err != nil {
			s.log.Warn("canvas reset failed", "error", err)
		}
	}
	s.data = nil
	s.stats = nil
	s.sel = nil
	s.fig = nil
}

func unwrapAll(err error) error {
	var dae *dataset.DataAccessError
	if errors.As(err, &dae) {
		return dae.Err
	}
	return err
}

// Phase returns the current phase.
func (s *Shell) Phase() Phase { return s.phase }

// Path returns the selected file path, if any.
func (s *Shell) Path() string { return s.path }

// Last returns the status of the most recent action.
func (s *Shell) Last() Status { return s.last }

// Dataset returns the loaded dataset, or nil.
func (s *Shell) Dataset() *dataset.Dataset { return s.data }

// Stats returns the statistics of the loaded dataset, or nil.
func (s *Shell) Stats() *analysis.Table { return s.stats }

// Figure returns the drawn figure, or nil before the first draw.
func (s *Shell) Figure() *plot.Figure { return s.fig }

// Fields returns the toggleable fields, empty unless data is loaded.
func (s *Shell) Fields() []string {
	if s.sel == nil {
		return nil
	}
	return s.sel.Fields()
}

// Selected returns the selected fields in toggle order.
func (s *Shell) Selected() []string {
	if s.sel == nil {
		return nil
	}
	return s.sel.Selected()
}

// IsSelected reports whether field is toggled on.
func (s *Shell) IsSelected(field string) bool {
	return s.sel != nil && s.sel.IsSelected(field)
}
