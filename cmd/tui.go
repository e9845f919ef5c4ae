package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/sheetstat/internal/shell"
	"github.com/KaramelBytes/sheetstat/internal/tui"
)

var (
	tuiOutput     string
	tuiFormat     string
	tuiBackground string
)

var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Full-screen terminal UI with field toggles and a status bar",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, canvas, err := newShell(tuiOutput, tuiFormat, tuiBackground)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			sh.Dispatch(shell.SelectFile{Path: args[0]})
			sh.Dispatch(shell.LoadFile{})
		}
		return tui.Run(tui.New(sh, settings().Precision, canvas.Path))
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&tuiOutput, "output", "o", "", "chart canvas path (default from config plot_output)")
	tuiCmd.Flags().StringVar(&tuiFormat, "format", "", "png | svg")
	tuiCmd.Flags().StringVar(&tuiBackground, "background", "", "figure background colour, e.g. #efefef")
}
