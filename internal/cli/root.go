// Package cli holds the cobra commands of the todo binary. Every command is a
// thin wrapper over client.Client.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todolist/internal/client"
	"github.com/jaekwang-park/todolist/internal/logging"
)

const defaultAPIURL = "http://localhost:8080"

type options struct {
	apiURL   string
	logLevel string
}

// NewRootCmd builds the todo command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Manage todo items on a todolist server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger(cmd.ErrOrStderr()).Debug("using server", "api", opts.apiURL, "command", cmd.Name())
		},
	}

	apiURL := os.Getenv("TODO_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "base URL of the todolist server (env TODO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(showCmd(opts))
	rootCmd.AddCommand(addCmd(opts))
	rootCmd.AddCommand(toggleCmd(opts))
	rootCmd.AddCommand(rmCmd(opts))
	rootCmd.AddCommand(tuiCmd(opts))
	return rootCmd
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL, nil)
}

func (o *options) logger(w io.Writer) *slog.Logger {
	return logging.New(w, logging.FormatConsole, logging.ParseLevel(o.logLevel))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", s)
	}
	return id, nil
}
