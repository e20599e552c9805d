package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tasks/internal/cli"
	"github.com/Makepad-fr/tasks/internal/config"
	"github.com/Makepad-fr/tasks/internal/screen"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := 0
	root := rootCmd(&code)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}
	stop()
	os.Exit(code)
}

func rootCmd(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tasks",
		Short:         "An in-memory to-do list screen",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			env, err := cli.Bootstrap(cfg, io.Discard)
			if err != nil {
				return err
			}
			defer env.Close()

			return screen.Run(cmd.Context(), screen.Options{
				Store:     env.Store,
				Logger:    env.Logger,
				CharLimit: cfg.CharLimit,
				AltScreen: cfg.AltScreen,
			})
		},
	}

	f := cmd.PersistentFlags()
	f.String("config", "", "config file (default ./"+config.ProjectFileName+")")
	f.String("theme", "", "color theme: classic, neon, mono")
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("log-file", "", "write logs to this file")
	f.String("seed", "", "JSON file of tasks to start with")
	f.Bool("alt-screen", true, "use the terminal's alternate screen")

	cmd.AddCommand(shellCmd(code))
	return cmd
}

func shellCmd(code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read task commands from stdin, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			env, err := cli.Bootstrap(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()

			yes, _ := cmd.Flags().GetBool("yes")
			group, _ := cmd.Flags().GetBool("group")
			prompt := ""
			if term.IsTerminal(os.Stdin.Fd()) {
				prompt = "> "
			}
			sh := cli.NewShell(env.Store, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), env.Logger, cli.Options{
				Group:     group,
				AssumeYes: yes,
				Prompt:    prompt,
			})
			*code = sh.Run()
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "remove without asking")
	cmd.Flags().Bool("group", false, "group ls output by pending/done")
	return cmd
}

// loadConfig layers flags over files and environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if f.Changed("theme") {
		cfg.Theme, _ = f.GetString("theme")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-file") {
		cfg.LogFile, _ = f.GetString("log-file")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetString("seed")
	}
	if f.Changed("alt-screen") {
		cfg.AltScreen, _ = f.GetBool("alt-screen")
	}
	return cfg, nil
}
