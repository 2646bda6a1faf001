package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NITESH-8/logsift/internal/output"
	"github.com/NITESH-8/logsift/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Re-process a log file whenever it changes",
	Long: `Watch a log file and regenerate its reduced artifact after each
burst of writes. Useful for keeping a condensed view of an actively
written log.

Examples:
  logsift watch /var/log/app.log
  logsift watch --follow-rotate --debounce 2s /var/log/app.log
  logsift watch --output-dir ./out app.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntP("chunk-size", "n", 0, "lines per chunk (default 5)")
	watchCmd.Flags().IntP("workers", "w", 0, "concurrent chunk workers (default: CPU count)")
	watchCmd.Flags().StringP("output-dir", "o", "", "directory for artifacts (default: current directory)")
	watchCmd.Flags().StringP("patterns", "p", "", "keywords file defining error patterns")
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period after a write before re-processing")
	watchCmd.Flags().Bool("follow-rotate", false, "keep watching through log rotations")
	watchCmd.Flags().Bool("no-initial", false, "skip the initial run at startup")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	debounce, _ := cmd.Flags().GetDuration("debounce")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")
	noInitial, _ := cmd.Flags().GetBool("no-initial")

	pipe, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(viper.GetString("format"))).
		WithColor(output.ParseColorMode(viper.GetString("color")))

	run := func(ctx context.Context, path string) error {
		result, err := pipe.Process(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", time.Now().Format(time.RFC3339))
		return writer.WriteReport(result)
	}

	w := watch.New(watch.Options{
		FilePath:     filePath,
		Debounce:     debounce,
		FollowRotate: followRotate,
		InitialRun:   !noInitial,
		Run:          run,
	})

	return w.Run(cmd.Context())
}
