package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"slides/internal/app"
	"slides/internal/config"
)

type flags struct {
	configPath string
	transport  string
	host       string
	port       int
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "slides-mcp",
		Short:         "MCP server for semantic Google Slides editing",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "YAML config file (default $SLIDES_MCP_CONFIG)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, &f)
		},
	}
	serve.Flags().StringVar(&f.transport, "transport", "", "stdio or http")
	serve.Flags().StringVar(&f.host, "host", "", "HTTP listen host")
	serve.Flags().IntVar(&f.port, "port", 0, "HTTP listen port")

	// Bare invocation serves over the configured transport.
	root.RunE = serve.RunE

	root.AddCommand(serve, authCmd(&f))
	return root
}

func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport = f.transport
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = f.host
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = f.port
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, cfg.Validate()
}

func serve(cmd *cobra.Command, f *flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := app.NewLogger(os.Stderr, level)

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(cmd.Context())
}

// ── auth ──

func authCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored Google credential",
	}

	importCmd := &cobra.Command{
		Use:   "import <credentials.json>",
		Short: "Store an authorized-user credentials file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens, err := openTokens(cmd, f)
			if err != nil {
				return err
			}
			defer tokens.Close()
			u, err := tokens.Import(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported credential (refresh token: %t)\n", u.RefreshToken != "")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored credential's state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := openTokens(cmd, f)
			if err != nil {
				return err
			}
			defer tokens.Close()
			st, err := tokens.Status()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		},
	}

	cmd.AddCommand(importCmd, statusCmd)
	return cmd
}

func openTokens(cmd *cobra.Command, f *flags) (*app.Tokens, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	return app.OpenTokens(cfg, app.NewLogger(os.Stderr, level))
}
