package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NITESH-8/logsift/internal/output"
	"github.com/NITESH-8/logsift/internal/pattern"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns [flags]",
	Short: "List the active error patterns",
	Long: `Show the pattern rules the processor would use, including the
severity, category, and confidence assigned to each keyword.

Without --patterns the built-in rule set is shown.

Examples:
  logsift patterns
  logsift patterns --patterns my_keywords.txt
  logsift patterns --format json`,
	Args: cobra.NoArgs,
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().StringP("patterns", "p", "", "keywords file defining error patterns")

	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	patternsFile := viper.GetString("patterns.file")
	if f, _ := cmd.Flags().GetString("patterns"); f != "" {
		patternsFile = f
	}

	lib := pattern.Load(patternsFile)

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format"))).
		WithColor(output.ParseColorMode(viper.GetString("color")))
	if err := writer.WriteRules(lib.Rules()); err != nil {
		return err
	}

	if output.ParseFormat(viper.GetString("format")) == output.FormatText {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d rules, %d false-positive guards\n", lib.Len(), len(lib.Guards()))
	}

	return nil
}
