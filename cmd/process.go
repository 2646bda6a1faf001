package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NITESH-8/logsift/internal/config"
	"github.com/NITESH-8/logsift/internal/output"
	"github.com/NITESH-8/logsift/internal/pattern"
	"github.com/NITESH-8/logsift/internal/reduce"
)

var processCmd = &cobra.Command{
	Use:   "process [flags] <file>...",
	Short: "Reduce log files into annotated artifacts",
	Long: `Process one or more log files and write a reduced artifact for each.

Each file is split into overlapping chunks; chunks matching known
error patterns are kept verbatim with severity and category
annotations, the rest are collapsed into one-line summaries.

Examples:
  logsift process /var/log/syslog
  logsift process --chunk-size 10 app.log
  logsift process --patterns my_keywords.txt --output-dir ./out *.log
  logsift process --format json app.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().IntP("chunk-size", "n", 0, "lines per chunk (default 5)")
	processCmd.Flags().IntP("workers", "w", 0, "concurrent chunk workers (default: CPU count)")
	processCmd.Flags().StringP("output-dir", "o", "", "directory for artifacts (default: current directory)")
	processCmd.Flags().StringP("patterns", "p", "", "keywords file defining error patterns")

	_ = viper.BindPFlag("chunk_size", processCmd.Flags().Lookup("chunk-size"))
	_ = viper.BindPFlag("workers", processCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("output_dir", processCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("patterns.file", processCmd.Flags().Lookup("patterns"))

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	pipe, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format"))).
		WithColor(output.ParseColorMode(viper.GetString("color")))
	multiFile := len(files) > 1

	for _, filePath := range files {
		result, err := pipe.Process(cmd.Context(), filePath)
		if err != nil {
			return fmt.Errorf("processing %s: %w", filePath, err)
		}

		if multiFile {
			fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", filePath)
		}
		if err := writer.WriteReport(result); err != nil {
			return err
		}
	}

	return nil
}

// newPipeline builds a reduction pipeline from the resolved
// configuration. Flag values override config file and environment.
func newPipeline(cmd *cobra.Command) (*reduce.Pipeline, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if n, _ := cmd.Flags().GetInt("chunk-size"); n > 0 {
		cfg.ChunkSize = n
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = reduce.DefaultChunkSize
	}
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		cfg.Workers = n
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if f, _ := cmd.Flags().GetString("patterns"); f != "" {
		cfg.Patterns.File = f
	}

	return reduce.New(
		reduce.WithLibrary(pattern.Load(cfg.Patterns.File)),
		reduce.WithChunkSize(cfg.ChunkSize),
		reduce.WithWorkers(cfg.Workers),
		reduce.WithOutputDir(cfg.OutputDir),
	), nil
}
