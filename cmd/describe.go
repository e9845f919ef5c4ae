package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/sheetstat/internal/analysis"
	"github.com/KaramelBytes/sheetstat/internal/dataset"
	"github.com/KaramelBytes/sheetstat/internal/utils"
)

var (
	descFormat    string
	descOutput    string
	descPrecision int
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print descriptive statistics for the numeric columns of a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		precision := settings().Precision
		if descPrecision > 0 {
			precision = descPrecision
		}
		ds, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		appLogger().Debug("dataset loaded", "path", args[0], "sheet", ds.Sheet, "rows", ds.Rows(), "columns", len(ds.Columns()))
		tab := analysis.Describe(ds)

		var body []byte
		switch strings.ToLower(descFormat) {
		case "grid", "":
			var b bytes.Buffer
			if len(tab.Fields) == 0 {
				b.WriteString("No numeric fields.\n")
			} else {
				tab.WriteGrid(&b, analysis.GridOptions{Precision: precision})
			}
			body = b.Bytes()
		case "markdown", "md":
			body = []byte(tab.Markdown(precision))
		case "json":
			body, err = utils.PrettyJSON(tab.Export())
			if err != nil {
				return err
			}
			body = append(body, '\n')
		case "yaml", "yml":
			body, err = yaml.Marshal(tab.Export())
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use grid, markdown, json or yaml)", descFormat)
		}

		if descOutput != "" {
			if err := utils.SafeWriteFile(descOutput, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote statistics for %s to %s\n", filepath.Base(args[0]), descOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(body)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&descFormat, "format", "f", "grid", "output format: grid | markdown | json | yaml")
	describeCmd.Flags().StringVarP(&descOutput, "output", "o", "", "optional path to write the statistics")
	describeCmd.Flags().IntVar(&descPrecision, "precision", 0, "significant digits (overrides config)")
}
