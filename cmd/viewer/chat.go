package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"car-viewer/internal/app"
	"car-viewer/internal/commands"
	"car-viewer/internal/logger"

	"github.com/spf13/cobra"
)

func chatCmd(opts *options) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "chat <model>",
		Short: "Configure a model from a text prompt, without a window",
		Long: `chat reads phrases from stdin, one per line, and answers each one the way the
in-window assistant does. Lines starting with "cmd " run terminal commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			opts.modelPath = args[0]
			cfg, err := loadSettings(opts, log)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, logPath, log)
			if err != nil {
				return err
			}
			loadModel(cmd.Context(), a, cfg.Model.Path)
			a.Drain()
			return repl(cmd.Context(), a, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().StringVar(&logPath, "log", "", "Append the conversation to this file")
	return cmd
}

// repl routes every input line and prints the conversation entries it produced.
func repl(ctx context.Context, a *app.App, in io.Reader, out io.Writer, log *slog.Logger) error {
	reg := commands.Configurator(a, func() error {
		loadModel(ctx, a, a.ModelPath())
		return nil
	})
	conv := a.Log()
	printed := conv.Len()
	flush := func() {
		entries := conv.Entries()
		for _, e := range entries[printed:] {
			if e.Sender == logger.User {
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", e.Sender, e.Text)
		}
		printed = len(entries)
	}
	flush()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if args, ok := commands.Parse(line); ok {
			if err := reg.Execute(args); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		} else {
			a.Post(app.Command{Text: line})
		}
		a.Drain()
		flush()
	}
	if err := sc.Err(); err != nil {
		return err
	}
	log.Debug("Chat session ended", slog.String("session", conv.Session().String()), slog.Int("entries", conv.Len()))
	return nil
}
