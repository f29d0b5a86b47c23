package cli

import (
	"fmt"

	"github.com/existflow/ironplan/internal/client"
	"github.com/existflow/ironplan/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "ironplan",
	Short: "Ironplan - project management from the terminal",
	Long: `Ironplan is a command-line client for the Ironplan project-management
server. Register an account, create projects, and manage tasks.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logConfig := logger.Config{
			Level:   logger.ParseLevel(logLevel),
			Console: logConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Debug("Ironplan CLI started", logger.F("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

var serverCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Show or set the server URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if err := c.SetServer(args[0]); err != nil {
				return err
			}
			fmt.Printf("Server set to %s\n", args[0])
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(serverCmd)
}
