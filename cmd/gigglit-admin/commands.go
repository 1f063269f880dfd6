package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
)

const commandTimeout = 30 * time.Second

func runPing(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := cmdCtx.newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	start := time.Now()
	topics, err := client.ListTopics(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("ping %s: %w", client.BaseURL(), err)
	}

	return writef(cmdCtx.Out, "ok: %s answered in %s (%d topics)\n",
		client.BaseURL(), elapsed.Round(time.Millisecond), len(topics))
}

// parseInterspersed parses args with fs, allowing flags after positional
// arguments, and returns the positional arguments in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

type sessionsOptions struct {
	UserID model.ID
	JSON   bool
}

func parseSessionsFlags(args []string) (sessionsOptions, error) {
	var (
		opts sessionsOptions
		user string
	)
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&user, "user", "", "only list sessions of this user id")
	fs.BoolVar(&opts.JSON, "json", false, "print JSON instead of a table")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return opts, err
	}
	if len(positional) > 0 {
		return opts, fmt.Errorf("unexpected argument %q", positional[0])
	}
	opts.UserID = model.CanonicalID(user)
	return opts, nil
}

// sessionRow is the printable view of a session. The backend token is left out.
type sessionRow struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func toSessionRows(sessions []domainauth.Session, userID model.ID) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		if !userID.IsZero() && model.CanonicalID(s.UserID.String()) != userID {
			continue
		}
		rows = append(rows, sessionRow{
			ID:        s.ID,
			UserID:    s.UserID.String(),
			Name:      s.Name,
			Email:     s.Email,
			Role:      s.Role,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionsFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	store, closeFn, err := cmdCtx.openSessions(ctx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx, closeFn)

	sessions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	rows := toSessionRows(sessions, opts.UserID)

	if opts.JSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		return writeln(cmdCtx.Out, "(no sessions)")
	}

	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 0, 2, ' ', 0)
	if err := writef(tw, "ID\tUSER\tNAME\tROLE\tEXPIRES\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.UserID, r.Name, r.Role, r.ExpiresAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\nTotal sessions: %d\n", len(rows))
}

type revokeOptions struct {
	UserID    model.ID
	SessionID string
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	var (
		opts revokeOptions
		user string
	)
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&user, "user", "", "revoke every session of this user id")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return opts, err
	}
	if len(positional) > 1 {
		return opts, fmt.Errorf("unexpected argument %q", positional[1])
	}
	if len(positional) == 1 {
		opts.SessionID = strings.TrimSpace(positional[0])
	}
	opts.UserID = model.CanonicalID(user)

	switch {
	case opts.SessionID == "" && opts.UserID.IsZero():
		return opts, errors.New("usage: gigglit-admin revoke <session-id> | --user <user-id>")
	case opts.SessionID != "" && !opts.UserID.IsZero():
		return opts, errors.New("give either a session id or --user, not both")
	}
	return opts, nil
}

func runRevoke(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	store, closeFn, err := cmdCtx.openSessions(ctx)
	if err != nil {
		return err
	}
	defer closeQuietly(cmdCtx, closeFn)

	ids := []string{opts.SessionID}
	if !opts.UserID.IsZero() {
		sessions, listErr := store.List(ctx)
		if listErr != nil {
			return fmt.Errorf("list sessions: %w", listErr)
		}
		ids = ids[:0]
		for _, r := range toSessionRows(sessions, opts.UserID) {
			ids = append(ids, r.ID)
		}
	}

	for _, id := range ids {
		if delErr := store.Delete(ctx, id); delErr != nil {
			return fmt.Errorf("revoke session %s: %w", id, delErr)
		}
		cmdCtx.Logger.InfoContext(ctx, "session revoked", "session_id", id)
	}
	return writef(cmdCtx.Out, "revoked %d session(s)\n", len(ids))
}

func closeQuietly(cmdCtx *commandContext, closeFn func() error) {
	if closeFn == nil {
		return
	}
	if err := closeFn(); err != nil {
		cmdCtx.Logger.Warn("close session store failed", "error", err)
	}
}
