package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todolist/internal/tui"
)

func tuiCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive todo list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile, _ := cmd.Flags().GetString("log-file")

			// The alt screen owns stdout and stderr, so logs go to a file or nowhere.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				w = f
			}

			logger := opts.logger(w)
			logger.Info("starting tui", "api", opts.apiURL)
			return tui.Run(cmd.Context(), opts.client(), logger)
		},
	}
	cmd.Flags().String("log-file", "", "append logs to this file")
	return cmd
}
