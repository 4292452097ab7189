package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/agencydesk/internal/client/client"
	"github.com/dmitrijs2005/agencydesk/internal/client/config"
)

// App is the agencyctl command runner. Commands given on the command line
// run once; with no command App starts an interactive shell.
type App struct {
	config *config.Config
	api    client.Client
	tokens *client.TokenStore
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		tokens: client.NewTokenStore(c.TokenFile),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes args as a single command, or starts the shell when args is
// empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.shell(ctx)
	}
	return a.exec(ctx, args[0], args[1:])
}

// token returns the cached session token or client.ErrNoSession.
func (a *App) token() (string, error) {
	return a.tokens.Load()
}
