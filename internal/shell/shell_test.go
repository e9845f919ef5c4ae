package shell

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/sheetstat/internal/dataset"
	"github.com/KaramelBytes/sheetstat/internal/logging"
	"github.com/KaramelBytes/sheetstat/internal/plot"
	"github.com/KaramelBytes/sheetstat/internal/selection"
)

type recordingCanvas struct {
	painted []*plot.Figure
	titles  []string
	resets  int
	err     error
}

func (c *recordingCanvas) Paint(fig *plot.Figure) error {
	if c.err != nil {
		return c.err
	}
	c.painted = append(c.painted, fig)
	c.titles = append(c.titles, fig.Title())
	return nil
}

func (c *recordingCanvas) Reset() error {
	c.resets++
	return nil
}

func writeSales(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Price", "Quantity", "Region", "Weight"},
		{10.5, 3, "North", 1.2},
		{12.0, 5, "South", 0.8},
		{9.25, 2, "North", 2.5},
		{15.75, 8, "East", 1.1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newShell(canvas Canvas) *Shell {
	return New(Options{Background: drawing.ColorFromHex("efefef"), Width: 640, Height: 480}, canvas, logging.Discard())
}

func loaded(t *testing.T, canvas Canvas) *Shell {
	t.Helper()
	s := newShell(canvas)
	require.Equal(t, Info, s.Dispatch(SelectFile{Path: writeSales(t)}).Level)
	st := s.Dispatch(LoadFile{})
	require.Equal(t, Info, st.Level, st.Message)
	return s
}

func TestSalesScenario(t *testing.T) {
	canvas := &recordingCanvas{}
	s := newShell(canvas)
	assert.Equal(t, NoFile, s.Phase())

	st := s.Dispatch(SelectFile{Path: writeSales(t)})
	assert.Equal(t, "Data file selected.", st.Message)
	assert.Equal(t, FileSelected, s.Phase())

	st = s.Dispatch(LoadFile{})
	assert.Equal(t, "Data file loaded.", st.Message)
	assert.Equal(t, DataLoaded, s.Phase())

	stats := s.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}, stats.Stats)
	assert.Equal(t, []string{"Price", "Quantity", "Weight"}, stats.Fields)
	assert.Equal(t, s.Dataset().ID, stats.DatasetID)

	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	st = s.Dispatch(DrawChart{})
	assert.Equal(t, Info, st.Level, st.Message)

	fig := s.Figure()
	require.NotNil(t, fig)
	assert.Equal(t, "Quantity vs Price", fig.Title())
	assert.Len(t, fig.Points(), s.Dataset().Rows())
	assert.Equal(t, []string{"Quantity vs Price"}, canvas.titles)
}

func TestDrawNeedsTwoFields(t *testing.T) {
	canvas := &recordingCanvas{}
	s := loaded(t, canvas)

	st := s.Dispatch(DrawChart{})
	assert.Equal(t, Warning, st.Level)
	var ie *selection.InsufficientError
	assert.True(t, errors.As(st.Err, &ie))

	s.Dispatch(ToggleField{Field: "Price"})
	st = s.Dispatch(DrawChart{})
	assert.Equal(t, Warning, st.Level)
	assert.Contains(t, st.Message, "at least 2")
	assert.Nil(t, s.Figure())
	assert.Empty(t, canvas.painted)
	assert.Equal(t, DataLoaded, s.Phase())
}

func TestDrawWithExcessUsesFirstTwo(t *testing.T) {
	s := loaded(t, &recordingCanvas{})
	for _, f := range []string{"Weight", "Price", "Quantity"} {
		require.Equal(t, Info, s.Dispatch(ToggleField{Field: f}).Level)
	}
	st := s.Dispatch(DrawChart{})
	assert.Equal(t, Warning, st.Level)
	assert.Contains(t, st.Message, "More than 2 fields")
	require.NotNil(t, s.Figure())
	x, y := s.Figure().Fields()
	assert.Equal(t, "Weight", x)
	assert.Equal(t, "Price", y)
}

func TestRedrawReusesFigure(t *testing.T) {
	canvas := &recordingCanvas{}
	s := loaded(t, canvas)
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	require.Equal(t, Info, s.Dispatch(DrawChart{}).Level)
	first := s.Figure()

	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Weight"})
	require.Equal(t, Info, s.Dispatch(DrawChart{}).Level)

	assert.Same(t, first, s.Figure())
	assert.Equal(t, "Weight vs Quantity", s.Figure().Title())
	require.Len(t, canvas.painted, 2)
	assert.Same(t, canvas.painted[0], canvas.painted[1])
	assert.Equal(t, []string{"Quantity vs Price", "Weight vs Quantity"}, canvas.titles)
}

func TestSelectingNewFileTearsDownEverything(t *testing.T) {
	canvas := &recordingCanvas{}
	s := loaded(t, canvas)
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	s.Dispatch(DrawChart{})
	oldID := s.Dataset().ID

	other := writeSales(t)
	st := s.Dispatch(SelectFile{Path: other})
	assert.Equal(t, FileSelected, s.Phase())
	assert.Equal(t, "Data file selected.", st.Message)
	assert.Nil(t, s.Dataset())
	assert.Nil(t, s.Stats())
	assert.Nil(t, s.Figure())
	assert.Empty(t, s.Selected())
	assert.Equal(t, 1, canvas.resets)

	require.Equal(t, Info, s.Dispatch(LoadFile{}).Level)
	assert.NotEqual(t, oldID, s.Dataset().ID)
	assert.Equal(t, s.Dataset().ID, s.Stats().DatasetID)
	assert.Empty(t, s.Selected())
}

func TestCancelledSelectionReturnsToNoFile(t *testing.T) {
	s := loaded(t, nil)
	st := s.Dispatch(SelectFile{Path: ""})
	assert.Equal(t, Warning, st.Level)
	assert.Equal(t, "No file selected", st.Message)
	assert.Equal(t, NoFile, s.Phase())
	assert.Nil(t, s.Dataset())
}

func TestUnloadKeepsPath(t *testing.T) {
	s := loaded(t, nil)
	path := s.Path()
	st := s.Dispatch(UnloadData{})
	assert.Equal(t, Info, st.Level)
	assert.Equal(t, FileSelected, s.Phase())
	assert.Equal(t, path, s.Path())
	assert.Nil(t, s.Stats())

	st = s.Dispatch(UnloadData{})
	assert.Equal(t, Warning, st.Level)

	require.Equal(t, Info, s.Dispatch(LoadFile{}).Level)
	assert.Equal(t, DataLoaded, s.Phase())
}

func TestLoadFailures(t *testing.T) {
	s := newShell(nil)
	st := s.Dispatch(LoadFile{})
	assert.Equal(t, Warning, st.Level)
	assert.Equal(t, "No file selected", st.Message)

	missing := filepath.Join(t.TempDir(), "missing.xlsx")
	s.Dispatch(SelectFile{Path: missing})
	st = s.Dispatch(LoadFile{})
	assert.Equal(t, Error, st.Level)
	var dae *dataset.DataAccessError
	require.True(t, errors.As(st.Err, &dae))
	assert.ErrorIs(t, st.Err, dataset.ErrFileNotFound)
	assert.Equal(t, FileSelected, s.Phase())
	assert.Nil(t, s.Dataset())
	assert.Nil(t, s.Stats())

	// Recoverable: choose another file.
	s.Dispatch(SelectFile{Path: writeSales(t)})
	assert.Equal(t, Info, s.Dispatch(LoadFile{}).Level)
}

func TestActionsRequireLoadedData(t *testing.T) {
	s := newShell(nil)
	for _, a := range []Action{ToggleField{Field: "Price"}, DrawChart{}, UnloadData{}} {
		st := s.Dispatch(a)
		assert.Equal(t, Warning, st.Level, "%T", a)
		assert.Equal(t, "No data loaded", st.Message)
	}
	assert.Equal(t, NoFile, s.Phase())
}

func TestToggleUnknownFieldIsReported(t *testing.T) {
	s := loaded(t, nil)
	st := s.Dispatch(ToggleField{Field: "Region"})
	assert.Equal(t, Error, st.Level)
	var ue *selection.UnknownFieldError
	assert.True(t, errors.As(st.Err, &ue))
	assert.Equal(t, DataLoaded, s.Phase())
}

func TestCanvasFailureIsReported(t *testing.T) {
	canvas := &recordingCanvas{err: errors.New("disk full")}
	s := loaded(t, canvas)
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	st := s.Dispatch(DrawChart{})
	assert.Equal(t, Error, st.Level)
	assert.Contains(t, st.Message, "disk full")
	assert.Nil(t, s.Figure())
}

func TestFileCanvasWritesImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts", "chart.png")
	s := loaded(t, &FileCanvas{Path: out, Format: plot.PNG})
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	require.Equal(t, Info, s.Dispatch(DrawChart{}).Level)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(b[:4]))
}

func TestFileCanvasClearedOnTeardown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	s := loaded(t, &FileCanvas{Path: out, Format: plot.PNG})
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	require.Equal(t, Info, s.Dispatch(DrawChart{}).Level)
	require.FileExists(t, out)

	require.Equal(t, Info, s.Dispatch(UnloadData{}).Level)
	assert.NoFileExists(t, out)

	// Drawing again and selecting another file also clears the canvas.
	require.Equal(t, Info, s.Dispatch(LoadFile{}).Level)
	s.Dispatch(ToggleField{Field: "Price"})
	s.Dispatch(ToggleField{Field: "Quantity"})
	require.Equal(t, Info, s.Dispatch(DrawChart{}).Level)
	require.FileExists(t, out)
	s.Dispatch(SelectFile{Path: filepath.Join(t.TempDir(), "other.xlsx")})
	assert.NoFileExists(t, out)
}

func TestFileCanvasResetWithoutImage(t *testing.T) {
	c := &FileCanvas{Path: filepath.Join(t.TempDir(), "never.png"), Format: plot.PNG}
	assert.NoError(t, c.Reset())
}
