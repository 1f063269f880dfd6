package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/gigglit/gigglit-web/config"
	"github.com/gigglit/gigglit-web/internal/adapters/gigglitapi"
	"github.com/gigglit/gigglit-web/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

// sessionOpener returns the configured session store and a func releasing
// its connections.
type sessionOpener func(ctx context.Context) (bootstrap.SessionBackend, func() error, error)

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer

	openSessions sessionOpener
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
		Out:    os.Stdout,
	}
	cmdCtx.openSessions = cmdCtx.connectSessions
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"ping": {
			name:        "ping",
			description: "Check that the Gigglit backend answers and report its latency",
			run:         runPing,
		},
		"sessions": {
			name:        "sessions",
			description: "List live web sessions (never prints backend tokens)",
			run:         runListSessions,
		},
		"revoke": {
			name:        "revoke",
			description: "Revoke one session by id, or every session of a user with --user",
			run:         runRevoke,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: gigglit-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	names := make([]string, 0, len(commands()))
	for name := range commands() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands()[name]
		if err := writef(w, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

func (c *commandContext) newAPIClient() (*gigglitapi.Client, error) {
	return gigglitapi.NewClient(gigglitapi.ClientOptions{
		BaseURL:          c.Config.API.BaseURL,
		Timeout:          c.Config.API.Timeout,
		BookmarkListExpr: c.Config.API.BookmarkListExpr,
		Logger:           c.Logger,
	})
}
