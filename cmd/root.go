package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	verbose bool
	quiet   bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "jnihgen",
	Short: "JNI C header generator",
	Long: "jnihgen generates JNI C headers, RegisterNatives signature tables and an " +
		"onload registration header from YAML class declarations or compiled class files.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "Write log messages to this file instead of stderr")
}

// logVerbosity maps the output flags to a commonlog verbosity: errors only when
// quiet, warnings by default, everything when verbose.
func logVerbosity() int {
	switch {
	case quiet:
		return -2
	case verbose:
		return 2
	default:
		return -1
	}
}

func configureLogging() {
	if logFile != "" {
		commonlog.Configure(logVerbosity(), &logFile)
		return
	}
	commonlog.Configure(logVerbosity(), nil)
}

func Execute() error {
	return rootCmd.Execute()
}
