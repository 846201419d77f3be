package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/services"
	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

var errPasswordMismatch = errors.New("passwords do not match")

// Register prompts for an email and password, creates the account and
// signs in.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	again, err := getPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	match := bytes.Equal(password, again)
	common.WipeByteArray(again)
	if !match {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return errPasswordMismatch
	}

	if _, err := a.authService.Register(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	a.refreshMode(ctx)
	return nil
}

// Login prompts for credentials. When the server is unreachable the auth
// service falls back to the credentials cached on this device, and the
// journal keeps working on local storage.
func (a *App) Login(ctx context.Context) error {
	if err := a.session.Flush(ctx); err != nil {
		return err
	}
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, email, password)
	switch {
	case errors.Is(err, services.ErrLocalDataNotAvailable):
		fmt.Fprintln(a.out, "Server unavailable and no cached credentials on this device.")
		return err
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(a.out, "Wrong email or password.")
		return err
	case err != nil:
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return err
	}

	if s.Online {
		fmt.Fprintln(a.out, "Login successful")
	} else {
		fmt.Fprintln(a.out, "Signed in offline; changes stay on this device")
	}
	a.refreshMode(ctx)
	return nil
}

// Logout sends pending edits, then ends the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Flush(ctx); err != nil {
		return err
	}
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	a.setMode(ModeLocal)
	return nil
}

// Whoami prints the current session.
func (a *App) Whoami(_ context.Context) error {
	printSession(a.out, a.authService)
	return nil
}

func printSession(w io.Writer, as AuthService) {
	s, ok := as.Current()
	switch {
	case !ok:
		fmt.Fprintln(w, "Not signed in; using local storage")
	case s.Online:
		fmt.Fprintf(w, "%s (synced with server)\n", s.Email)
	default:
		fmt.Fprintf(w, "%s (offline, local storage)\n", s.Email)
	}
}
