package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hongminglow/filmdesk/internal/api"
	"github.com/hongminglow/filmdesk/internal/schema"
	"github.com/hongminglow/filmdesk/internal/session"
)

var errUsage = errors.New("usage")

func (a *App) login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = ReadLine(a.in, "username", a.out); err != nil {
			return err
		}
	}

	pw, err := ReadPassword(a.in, a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)

	user, err := a.auth.Login(ctx, api.Credentials{Username: username, Password: string(pw)})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", displayName(user.Username, user.Name))
	return nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	var reg api.Registration
	var err error
	if reg.Username, err = ReadLine(a.in, "username", a.out); err != nil {
		return err
	}
	if reg.Name, err = ReadLine(a.in, "name", a.out); err != nil {
		return err
	}
	if reg.Email, err = ReadLine(a.in, "email", a.out); err != nil {
		return err
	}
	pw, err := ReadPassword(a.in, a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)
	reg.Password = string(pw)

	user, err := a.backend.Register(ctx, reg)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s, you can now log in\n", user.Username)
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	user, err := a.auth.User(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id:       %s\n", user.ID)
	fmt.Fprintf(a.out, "username: %s\n", user.Username)
	fmt.Fprintf(a.out, "name:     %s\n", user.Name)
	fmt.Fprintf(a.out, "email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "balance:  %.2f\n", user.Balance)
	return nil
}

func (a *App) listFilms(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")

	var (
		films []schema.Film
		err   error
	)
	if q == "" {
		films, err = a.films.Fetch(ctx)
	} else {
		films, err = a.backend.GetFilms(ctx, q)
	}
	if err != nil {
		return err
	}
	a.printFilms(films)
	return nil
}

func (a *App) addFilm(ctx context.Context, _ []string) error {
	var film api.NewFilm
	var err error
	if film.Title, err = ReadLine(a.in, "title", a.out); err != nil {
		return err
	}
	if film.Director, err = ReadLine(a.in, "director (optional)", a.out); err != nil {
		return err
	}
	year, err := ReadLine(a.in, "year (optional)", a.out)
	if err != nil {
		return err
	}
	if year != "" {
		if film.Year, err = strconv.Atoi(year); err != nil {
			return errors.New("year must be a number")
		}
	}

	created, err := a.backend.CreateFilm(ctx, film)
	if err != nil {
		return err
	}
	a.cache.Invalidate(FilmsKey)
	fmt.Fprintf(a.out, "added %s (%s)\n", created.Title, created.ID)
	return nil
}

func (a *App) deleteFilm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	remaining, err := a.backend.DeleteFilm(ctx, args[0])
	if err != nil {
		return err
	}
	a.cache.Invalidate(FilmsKey)
	fmt.Fprintf(a.out, "deleted %s\n", args[0])
	a.printFilms(remaining)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) printFilms(films []schema.Film) {
	if len(films) == 0 {
		fmt.Fprintln(a.out, "no films")
		return
	}
	for _, f := range films {
		line := fmt.Sprintf("%-36s  %s", f.ID, f.Title)
		if f.Director != "" {
			line += ", " + f.Director
		}
		if f.Year != 0 {
			line += fmt.Sprintf(" (%d)", f.Year)
		}
		fmt.Fprintln(a.out, line)
	}
}

// describe turns a command error into a line for the user.
func describe(err error) string {
	var (
		apiErr   *api.APIError
		httpErr  *api.HTTPError
		validErr *schema.ValidationError
	)
	switch {
	case errors.Is(err, session.ErrNotLoggedIn), api.IsUnauthorized(err) && !errors.As(err, &apiErr):
		return "not logged in"
	case errors.Is(err, api.ErrEmptyID):
		return "a film id is required"
	case errors.As(err, &validErr):
		return "unexpected response from server: " + validErr.Error()
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &httpErr):
		return httpErr.Error()
	default:
		return err.Error()
	}
}

func displayName(username, name string) string {
	if name == "" {
		return username
	}
	return fmt.Sprintf("%s (%s)", name, username)
}
