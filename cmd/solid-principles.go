package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solid-principles/internal/app"
	"solid-principles/internal/config"
	"solid-principles/internal/listing"
	"solid-principles/internal/logline"
	"solid-principles/internal/menu"
	"solid-principles/internal/reader"
	"solid-principles/internal/strictmap"
	"solid-principles/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env, os.Stderr)

	if err := newRootCmd(cfg, log, os.Stdout).ExecuteContext(context.Background()); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log *slog.Logger, out io.Writer) *cobra.Command {
	contactCmd := newContactCmd(cfg, log, out)

	root := &cobra.Command{
		Use:           "solid-principles",
		Short:         "Design principle demonstrations built around a notification dispatcher",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          contactCmd.RunE,
	}
	root.Flags().AddFlagSet(contactCmd.Flags())

	root.AddCommand(
		contactCmd,
		newRemindCmd(cfg, log),
		newLogsCmd(out),
		newReadersCmd(out),
		newMappingCmd(out),
		newListCmd(out),
		newMenuCmd(out),
	)
	return root
}

func newContactCmd(cfg *config.Config, log *slog.Logger, out io.Writer) *cobra.Command {
	var message, customers string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact every customer through their preferred channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := *cfg
			c.CustomersFile = customers

			a, err := app.New(&c, log, out)
			if err != nil {
				return err
			}

			n, err := a.ContactAll(cmd.Context(), message)
			if err != nil {
				return err
			}
			log.Debug("run finished", "contacted", n, "channels", a.Methods())
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", cfg.Message, "message to deliver")
	cmd.Flags().StringVar(&customers, "customers", cfg.CustomersFile, "YAML roster file (default: built-in demo roster)")
	return cmd
}

func newRemindCmd(cfg *config.Config, log *slog.Logger) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Contact every customer on the REMIND_SCHEDULE cron schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cfg, log, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			svc, err := a.Reminder(message)
			if err != nil {
				return err
			}
			log.Info("first run scheduled", "at", svc.NextRun(time.Now()).Format(time.RFC3339))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- svc.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Info("received shutdown signal")
			}

			if err := svc.Shutdown(cfg.ShutdownTimeout); err != nil {
				log.Error("shutdown error", "error", err)
			}
			log.Info("reminder service stopped")
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", cfg.Message, "message to deliver")
	return cmd
}

func newLogsCmd(out io.Writer) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print demo log events with an injected date parser",
		RunE: func(_ *cobra.Command, _ []string) error {
			var factory logline.ParserFactory
			switch format {
			case "long":
				factory = logline.LongDateParser
			case "short":
				factory = logline.ShortDateParser
			default:
				return fmt.Errorf("unknown date format %q, expected long or short", format)
			}

			for _, ev := range logline.DemoEvents() {
				if err := logline.Print(out, ev, factory); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "long", "date format: long or short")
	return cmd
}

func newReadersCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "readers",
		Short: "Use e-book readers through the interfaces they opt into",
		RunE: func(_ *cobra.Command, _ []string) error {
			return reader.Demo(out)
		},
	}
}

func newMappingCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mapping",
		Short: "Show a mapping that cannot stand in for another (fails on purpose)",
		RunE: func(_ *cobra.Command, _ []string) error {
			const doc = `{"key": null}`

			std := strictmap.NewMap()
			_ = std.Set("key", "value")
			if err := strictmap.ReplaceValues(out, std, doc); err != nil {
				return err
			}

			strict := strictmap.NewStrictMap()
			_ = strict.Set("key", "value")
			return strictmap.ReplaceValues(out, strict, doc)
		},
	}
}

func newListCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory in columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			entries, err := listing.List(path)
			if err != nil {
				return err
			}

			lines := listing.Columns(listing.Sort(entries), terminalWidth(out), listing.MaxCols)
			if err := listing.Print(out, lines); err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, len(entries))
			return err
		},
	}
}

func newMenuCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show which types satisfy the Menu interface",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, m := range []any{menu.LunchMenu{}, menu.TakeoutMenu{}, menu.DinnerMenu{}} {
				if _, err := fmt.Fprintf(out, "%T: %s\n", m, menu.Classify(m)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return listing.TerminalWidth(int(f.Fd()))
	}
	return listing.TerminalWidth(-1)
}
