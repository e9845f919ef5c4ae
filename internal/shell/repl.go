package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/sheetstat/internal/analysis"
)

const replHelp = `Commands:
  select <path>   choose a spreadsheet (empty path clears the choice)
  load            load the selected file and show its statistics
  toggle <field>  select or deselect a field for the chart
  draw            draw or redraw the chart of the first two selected fields
  unload          discard the loaded data
  stats           show the statistics grid
  fields          list selectable fields in selection order
  status          show the current state
  help            show this help
  quit            leave the shell`

// REPL reads line commands and dispatches them to a Shell.
type REPL struct {
	Shell     *Shell
	Precision int
	Prompt    string
}

// Run processes commands from in until EOF or quit.
func (r *REPL) Run(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	r.prompt(out)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			r.prompt(out)
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch strings.ToLower(cmd) {
		case "quit", "exit":
			return nil
		case "help", "?":
			fmt.Fprintln(out, replHelp)
		case "select", "open":
			r.report(out, SelectFile{Path: arg})
		case "load":
			if r.report(out, LoadFile{}) && r.Shell.Phase() == DataLoaded {
				r.printStats(out)
			}
		case "toggle":
			if arg == "" {
				fmt.Fprintln(out, "⚠ Usage: toggle <field>")
				break
			}
			r.report(out, ToggleField{Field: arg})
		case "draw", "redraw":
			r.report(out, DrawChart{})
		case "unload":
			r.report(out, UnloadData{})
		case "stats":
			r.printStats(out)
		case "fields":
			r.printFields(out)
		case "status":
			r.printStatus(out)
		default:
			fmt.Fprintf(out, "⚠ Unknown command %q (try help)\n", cmd)
		}
		r.prompt(out)
	}
	return sc.Err()
}

// report dispatches a and prints its status. It returns false for errors.
func (r *REPL) report(out io.Writer, a Action) bool {
	st := r.Shell.Dispatch(a)
	fmt.Fprintln(out, st.String())
	return st.Level != Error
}

func (r *REPL) prompt(out io.Writer) {
	if r.Prompt != "" {
		fmt.Fprint(out, r.Prompt)
	}
}

func (r *REPL) printStats(out io.Writer) {
	t := r.Shell.Stats()
	if t == nil {
		fmt.Fprintln(out, "⚠ No data loaded")
		return
	}
	if len(t.Fields) == 0 {
		fmt.Fprintln(out, "No numeric fields.")
		return
	}
	t.WriteGrid(out, analysis.GridOptions{Precision: r.Precision, Selected: r.Shell.IsSelected})
}

func (r *REPL) printFields(out io.Writer) {
	fields := r.Shell.Fields()
	if fields == nil {
		fmt.Fprintln(out, "⚠ No data loaded")
		return
	}
	for _, f := range fields {
		mark := "[ ]"
		if r.Shell.IsSelected(f) {
			mark = "[x]"
		}
		fmt.Fprintf(out, "%s %s\n", mark, f)
	}
	if sel := r.Shell.Selected(); len(sel) > 0 {
		fmt.Fprintf(out, "Selection order: %s\n", strings.Join(sel, ", "))
	}
}

func (r *REPL) printStatus(out io.Writer) {
	fmt.Fprintf(out, "State: %s\n", r.Shell.Phase())
	if p := r.Shell.Path(); p != "" {
		fmt.Fprintf(out, "File: %s\n", p)
	}
	if ds := r.Shell.Dataset(); ds != nil {
		fmt.Fprintf(out, "Rows: %d, Columns: %d\n", ds.Rows(), len(ds.Columns()))
	}
	if fig := r.Shell.Figure(); fig != nil {
		fmt.Fprintf(out, "Chart: %s\n", fig.Title())
	}
	fmt.Fprintf(out, "Last: %s\n", r.Shell.Last())
}
