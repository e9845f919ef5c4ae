package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/sheetstat/internal/analysis"
	"github.com/KaramelBytes/sheetstat/internal/shell"
)

var (
	shellOutput     string
	shellFormat     string
	shellBackground string
	shellPrompt     string
)

var shellCmd = &cobra.Command{
	Use:   "shell [file]",
	Short: "Interactive shell: select, load, toggle fields and draw charts",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, canvas, err := newShell(shellOutput, shellFormat, shellBackground)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		repl := &shell.REPL{Shell: sh, Precision: settings().Precision, Prompt: shellPrompt}
		fmt.Fprintf(out, "Charts are painted to %s. Type help for commands.\n", canvas.Path)
		if len(args) == 1 {
			fmt.Fprintln(out, sh.Dispatch(shell.SelectFile{Path: args[0]}))
			fmt.Fprintln(out, sh.Dispatch(shell.LoadFile{}))
			if t := sh.Stats(); t != nil && len(t.Fields) > 0 {
				t.WriteGrid(out, gridOptions(sh))
			}
		}
		return repl.Run(cmd.InOrStdin(), out)
	},
}

func gridOptions(sh *shell.Shell) analysis.GridOptions {
	return analysis.GridOptions{Precision: settings().Precision, Selected: sh.IsSelected}
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVarP(&shellOutput, "output", "o", "", "chart canvas path (default from config plot_output)")
	shellCmd.Flags().StringVar(&shellFormat, "format", "", "png | svg")
	shellCmd.Flags().StringVar(&shellBackground, "background", "", "figure background colour, e.g. #efefef")
	shellCmd.Flags().StringVar(&shellPrompt, "prompt", "sheetstat> ", "prompt printed before each command")
}
