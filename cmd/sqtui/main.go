package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkonda/sqtui/internal/app"
	"github.com/mkonda/sqtui/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sqtui: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "sqtui",
		Short: "Terminal UI for monitoring Slurm jobs and their logs",
		Long: `sqtui shows your Slurm queue and tails the selected job's output.

Jobs are polled with squeue, output paths fetched with scontrol, and log
files read locally, through configured path mappings, or over SSH from the
job's first node.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Run(ctx, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/sqtui/config.toml)")
	cmd.Flags().BoolVar(&opts.AllUsers, "all-users", false, "show jobs from every user")
	cmd.Flags().IntVar(&opts.PollMS, "poll-ms", 0, "refresh interval in milliseconds (overrides config)")
	cmd.Flags().StringVar(&opts.DebugLog, "debug-log", "", "write debug logs to this file")

	cmd.AddCommand(genConfigCmd())
	return cmd
}

func genConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: "Write a commented default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
