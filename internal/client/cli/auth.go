package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/truekicks/internal/client/client"
	"github.com/dmitrijs2005/truekicks/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a full name, email and password and creates an
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	fields, err := GetFields(a.reader, a.out, "Enter full name", "Enter email")
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Register(ctx, fields[0], fields[1], password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful, please log in.")
	return nil
}

// Login prompts for credentials and stores the returned identity.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("server unavailable, try again later: %w", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", id.FullName)
	return nil
}

// Guest continues without an account.
func (a *App) Guest(ctx context.Context) error {
	if err := a.auth.ContinueAsGuest(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Browsing as guest.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile prints the stored identity.
func (a *App) Profile(ctx context.Context) error {
	id, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	if id == nil || id.IsGuest() {
		fmt.Fprintln(a.out, "Guest (not logged in)")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", id.FullName, id.Email, id.ID)
	return nil
}

func (a *App) Rename(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new full name", a.out)
	if err != nil {
		return err
	}
	id, err := a.auth.Rename(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name changed to %s\n", id.FullName)
	return nil
}
