// Command tn is a single-user task tracker backed by a JSON file.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tasknest/tasknest/internal/cli"
	"github.com/tasknest/tasknest/internal/jsonstore"
)

var rootCmd = &cobra.Command{
	Use:   "tn",
	Short: "tn is a personal task tracker",
	Long: `tn manages a personal task list stored in a single JSON file.

Tasks have a short hex ID, a title, an optional description, and a
pending/completed status. The file defaults to tasks.json in the current
directory; override with --file or the TN_FILE environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("file", "tasks.json", "path to the task JSON file")

	viper.SetEnvPrefix("TN")
	viper.AutomaticEnv()
	if err := viper.BindPFlag("file", rootCmd.PersistentFlags().Lookup("file")); err != nil {
		panic(err)
	}
}

// newService wires a task service against the configured file. Logging
// goes to stderr at warn level so corruption backups are visible without
// drowning normal output.
func newService() *cli.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	store := jsonstore.New(viper.GetString("file"), logger)
	return cli.NewService(store, logger)
}

// fail prints a styled error and exits nonzero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", renderError("Error:"), err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err)
	}
}
