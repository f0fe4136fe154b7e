package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dkarpovs/epitrello/internal/common"
	"github.com/dkarpovs/epitrello/internal/server/models"
)

// Register prompts for the account details, creates the account, and starts
// a session with the returned token.
func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, token, err := a.api.Register(ctx, username, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			printlnFn("An account with this email already exists.")
		} else {
			printlnFn("Registration failed:", err)
		}
		return err
	}

	return a.startSession(user, token)
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, token, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Invalid email or password.")
		} else {
			printlnFn("Login failed:", err)
		}
		return err
	}

	return a.startSession(user, token)
}

// Logout clears the persisted session and forgets the token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(); err != nil {
		printlnFn("Logout failed:", err)
		return err
	}
	a.api.Token = ""
	printlnFn("Logged out.")
	return nil
}

func (a *App) startSession(user *models.User, token string) error {
	a.session.Token = token
	a.session.User = user
	if err := a.session.Save(); err != nil {
		printlnFn("Could not persist session:", err)
		return err
	}
	a.api.Token = token
	printlnFn("Logged in as", user.Username)
	return nil
}
