package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-backoffice/internal/app"
	"go-backoffice/internal/backoffice"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose  bool
	listName string
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "backoffice: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "backoffice",
		Short:        "Internal recruitment back office",
		Long:         `Manage internal recruitment postings from the terminal: list them, or open an interactive form to create, edit and delete postings.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().StringVar(&listName, "list", "", "Posting list name (defaults to LIST_NAME or BackOfficeV1)")
	cmd.AddCommand(
		newConsoleCmd(),
		newListCmd(),
	)
	return cmd
}

func setupLogger() error {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func loadConfig() app.Config {
	cfg := app.LoadConfig()
	if listName != "" {
		cfg.ListName = listName
	}
	return cfg
}

func newConsoleCmd() *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Open the interactive posting form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, cleanup, err := app.NewConsoleData(ctx, loadConfig(), memory)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			c := backoffice.NewController(data, backoffice.NotifierFunc(func(msg string) {
				fmt.Fprintln(out, "!", msg)
			}))
			if err := c.Mount(ctx); err != nil {
				fmt.Fprintln(out, "!", backoffice.MsgFetchFailed)
			}
			return backoffice.RunConsole(ctx, c, cmd.InOrStdin(), out)
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "Use a process-local list instead of the database")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the postings table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, cleanup, err := app.NewConsoleData(ctx, loadConfig(), false)
			if err != nil {
				return err
			}
			defer cleanup()

			postings, err := data.ListAll(ctx)
			if err != nil {
				return err
			}
			return backoffice.RenderTable(cmd.OutOrStdout(), postings)
		},
	}
}
