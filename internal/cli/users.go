package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/filex"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

// Register creates an account: register <username> <email> [password].
// The password is prompted without echo when not given as an argument.
func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: register <username> <email> [password]")
	}
	username, email := args[0], args[1]

	var password string
	if len(args) > 2 {
		password = args[2]
	} else {
		pw, err := GetPassword(a.out)
		if err != nil {
			return err
		}
		password = string(pw)
	}

	err := a.withStore(ctx, true, func(s *store.Store) error {
		_, err := s.RegisterUser(username, email, password)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %s registered\n", username)
	return nil
}

// Login verifies a credential and caches a session token:
// login <username> [password].
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: login <username> [password]")
	}
	username := args[0]

	var password string
	if len(args) > 1 {
		password = args[1]
	} else {
		pw, err := GetPassword(a.out)
		if err != nil {
			return err
		}
		password = string(pw)
	}

	err := a.withStore(ctx, false, func(s *store.Store) error {
		_, err := s.Authenticate(username, password)
		return err
	})
	if err != nil {
		return err
	}

	if err := a.saveSession(username); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Authenticated as %s\n", username)
	return nil
}

// Whoami resolves the cached session token.
func (a *App) Whoami(ctx context.Context) error {
	username, err := a.sessionUser()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	fmt.Fprintln(a.out, username)
	return nil
}

// Settings updates a user's display preferences:
// settings <username> [-theme light|dark] [-date-format LAYOUT] [-notifications].
// Only flags that were given change the stored value.
func (a *App) Settings(ctx context.Context, args []string) error {
	username, rest := popPositional(args)

	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	theme := fs.String("theme", "", "interface theme (light or dark)")
	dateFormat := fs.String("date-format", "", "date display format (Go reference layout)")
	notifications := fs.Bool("notifications", true, "enable notifications")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if username == "" {
		username, _ = popPositional(fs.Args())
	}
	if username == "" {
		return fmt.Errorf("usage: settings <username> [flags]")
	}
	if *theme != "" && *theme != "light" && *theme != "dark" {
		return fmt.Errorf("theme must be light or dark")
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	err := a.withStore(ctx, true, func(s *store.Store) error {
		current, err := s.UserSettings(username)
		if err != nil {
			return err
		}
		next := current
		if set["theme"] {
			next.Theme = *theme
		}
		if set["date-format"] {
			next.DateFormat = *dateFormat
		}
		if set["notifications"] {
			next.Notifications = *notifications
		}
		return s.UpdateSettings(username, next)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Settings updated")
	return nil
}

func (a *App) saveSession(username string) error {
	token, err := auth.GenerateSessionToken(username,
		[]byte(a.config.SecretKey), a.config.SessionValidityDuration, a.clock.Now())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(a.config.SessionFile); dir != "." {
		if _, err := filex.EnsureDir(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(a.config.SessionFile, []byte(token), 0o600)
}

// sessionUser returns the username of the cached session, or an error when
// no valid session exists.
func (a *App) sessionUser() (string, error) {
	data, err := os.ReadFile(a.config.SessionFile)
	if err != nil {
		return "", err
	}
	return auth.UserNameFromToken(strings.TrimSpace(string(data)), []byte(a.config.SecretKey))
}

// dateFormatFor picks the rendering layout: the owner's configured format
// when one is set, the config fallback otherwise.
func (a *App) dateFormatFor(s *store.Store, username string) string {
	if username != "" {
		if settings, err := s.UserSettings(username); err == nil && settings.DateFormat != "" {
			return settings.DateFormat
		}
	}
	return a.config.DateFormat
}

// sessionOr returns the session user when fallback is empty.
func (a *App) sessionOr(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if username, err := a.sessionUser(); err == nil {
		return username
	}
	return ""
}
