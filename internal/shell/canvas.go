package shell

import (
	"bytes"
	"fmt"
	"os"

	"github.com/KaramelBytes/sheetstat/internal/plot"
	"github.com/KaramelBytes/sheetstat/internal/utils"
)

// Canvas is where a drawn figure is embedded. Paint is called after every
// successful draw with the same figure value; Reset is called on teardown.
type Canvas interface {
	Paint(fig *plot.Figure) error
	Reset() error
}

// FileCanvas embeds the figure by writing the rendered image to Path,
// replacing the previous image atomically on each redraw.
type FileCanvas struct {
	Path   string
	Format plot.Format
}

func (c *FileCanvas) Paint(fig *plot.Figure) error {
	var buf bytes.Buffer
	if err := fig.Render(&buf, c.Format); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(c.Path, buf.Bytes()); err != nil {
		return fmt.Errorf("paint %s: %w", c.Path, err)
	}
	return nil
}

// Reset removes the painted image so no stale chart outlives its data.
func (c *FileCanvas) Reset() error {
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reset %s: %w", c.Path, err)
	}
	return nil
}
