package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/agencydesk/internal/client/client"
)

func (a *App) register(ctx context.Context, args []string) error {
	username, err := a.argOrPrompt(args, "Username")
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, "Role (empty for member)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Register(ctx, username, email, string(password), role)
	if err != nil {
		return err
	}
	return a.saveSession(s)
}

func (a *App) login(ctx context.Context, args []string) error {
	username, err := a.argOrPrompt(args, "Username")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return err
	}
	return a.saveSession(s)
}

func (a *App) logout() error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) me(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	u, err := a.api.Me(ctx, tok)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s id=%s\n", u.Username, u.Email, u.Role, u.ID)
	return nil
}

func (a *App) saveSession(s *client.Session) error {
	if err := a.tokens.Save(s.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s), session valid until %s\n",
		s.User.Username, s.User.Role, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}
