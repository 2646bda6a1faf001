package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NITESH-8/logsift/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "logsift",
	Short: "Reduce log files to their interesting parts",
	Long: `Logsift condenses large log files into compact artifacts.

It chunks a log file, flags chunks that match known error patterns,
and summarizes the rest, producing a single reduced file that keeps
problem context verbatim while collapsing routine output.

Examples:
  logsift process /var/log/syslog
  logsift process --chunk-size 10 --output-dir ./out app.log
  logsift watch --follow-rotate /var/log/app.log
  logsift patterns --format table`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.logsift.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto, always, never)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".logsift")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LOGSIFT")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", "auto")
	viper.SetDefault("chunk_size", 5)
	viper.SetDefault("workers", 0)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("patterns.file", "")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	level := viper.GetString("log.level")
	if viper.GetBool("verbose") {
		level = "debug"
	}
	logging.Init(logging.Options{
		Level:  level,
		Format: viper.GetString("log.format"),
	})
}
