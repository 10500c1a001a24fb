package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

type command struct {
	name  string
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"register", "register", "create an account", (*App).register},
	{"login", "login [username]", "start a session", (*App).login},
	{"whoami", "whoami", "show the logged-in user", (*App).whoami},
	{"films", "films [query]", "list films, optionally filtered by title", (*App).listFilms},
	{"add", "add", "add a film", (*App).addFilm},
	{"delete", "delete <id>", "delete a film", (*App).deleteFilm},
	{"logout", "logout", "end the session", (*App).logout},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

type readResult struct {
	line string
	err  error
}

// readLine waits for the next input line or for ctx to be done. On
// cancellation the pending read is abandoned along with the session.
func (a *App) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := a.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Run reads commands until EOF, "exit" or "quit", or until ctx is done.
// Command errors are reported and the loop continues.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(a.out, a.prompt())
		line, err := a.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			fmt.Fprintln(a.out)
			return ctxErr
		}
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch name := parts[0]; name {
		case "exit", "quit":
			fmt.Fprintln(a.out, "bye")
			return nil
		case "help":
			a.help()
		default:
			a.exec(ctx, name, parts[1:])
		}
	}
}

func (a *App) exec(ctx context.Context, name string, args []string) {
	c, ok := lookup(name)
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q, try help\n", name)
		return
	}

	err := c.run(a, ctx, args)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.out, "usage: %s\n", c.usage)
	default:
		a.log.Debugw("command failed", "command", name, "error", err)
		fmt.Fprintf(a.out, "error: %s\n", describe(err))
	}
}

func (a *App) help() {
	for _, c := range commands {
		fmt.Fprintf(a.out, "  %-18s %s\n", c.usage, c.help)
	}
	fmt.Fprintf(a.out, "  %-18s %s\n", "help", "show this list")
	fmt.Fprintf(a.out, "  %-18s %s\n", "exit", "leave")
}
