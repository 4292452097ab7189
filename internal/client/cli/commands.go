package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/agencydesk/internal/buildinfo"
	"github.com/dmitrijs2005/agencydesk/internal/client/client"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `Commands:
  register [username]   create an account and log in
  login [username]      log in and cache the session token
  logout                forget the cached session token
  me                    show the logged-in user
  team                  list all users
  stats                 dashboard totals
  clients               list clients
  projects              list projects
  invoices              list invoices
  attach <id> <file>    upload a file as the invoice attachment
  fetch <id> <file>     download the invoice attachment to a new file
  ping                  check the server is reachable
  version               print build information
  help                  show this text`

func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	var err error

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
	case "version":
		buildinfo.PrintBuildData(a.out)
	case "ping":
		err = a.ping(ctx)
	case "register":
		err = a.register(ctx, args)
	case "login":
		err = a.login(ctx, args)
	case "logout":
		err = a.logout()
	case "me":
		err = a.me(ctx)
	case "team":
		err = a.team(ctx)
	case "stats":
		err = a.stats(ctx)
	case "clients":
		err = a.clients(ctx)
	case "projects":
		err = a.projects(ctx)
	case "invoices":
		err = a.invoices(ctx)
	case "attach":
		err = a.attach(ctx, args)
	case "fetch":
		err = a.fetch(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	return explain(err)
}

// explain rewrites errors the user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, client.ErrNoSession):
		return errors.New("not logged in, run 'agencyctl login' first")
	case errors.Is(err, client.ErrUnauthorized):
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			return fmt.Errorf("%s, run 'agencyctl login' again", strings.TrimSuffix(apiErr.Detail, "."))
		}
		return errors.New("session rejected, run 'agencyctl login' again")
	}
	return err
}

func (a *App) ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "pong")
	return nil
}
