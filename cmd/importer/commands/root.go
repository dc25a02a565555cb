package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// 全局参数
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Bulk import ZK bug reports from JSON",
	Long: `Importer loads curated ZK vulnerability reports from a JSON file into the bug directory.

Each record is validated and stored independently; a bad record is reported
and skipped without aborting the batch.

Exit codes:
  0  all records imported (or the file was empty)
  2  some records failed
  1  every record failed, or the run could not start`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError 携带退出码，不额外打印
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute 入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print the raw import result as JSON")
}
