package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/azhark/cottagecatalog/internal/client/api"
	"github.com/azhark/cottagecatalog/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email-or-phone plus password and authenticates.
// A failed attempt is reported to the user, never returned as an error:
// the REPL stays alive either way.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter email or phone", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, login, password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			printlnFn(a.t("api.errors.invalidCredentials"))
			return nil
		}
		a.log.Error(ctx, "login failed", "error", err)
		printlnFn("Login failed:", err.Error())
		return nil
	}

	printlnFn(a.t("auth.loginSuccess"), "—", user.FullName())
	return nil
}

// Register walks through the registration form and logs the new user in.
func (a *App) Register(ctx context.Context) error {
	var data services.RegisterData
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter email", &data.Email},
		{"Enter phone (+7...)", &data.Phone},
		{"Enter first name", &data.FirstName},
		{"Enter last name", &data.LastName},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	data.Password = password

	user, err := a.auth.Register(ctx, data)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUserExists):
			printlnFn(a.t("api.errors.userExists"))
		case errors.Is(err, services.ErrValidation):
			printlnFn("Invalid input:", err.Error())
		default:
			a.log.Error(ctx, "registration failed", "error", err)
			printlnFn("Registration failed:", err.Error())
		}
		return nil
	}

	printlnFn(a.t("auth.registerSuccess"), "—", user.FullName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		printlnFn("Logout failed:", err.Error())
		return nil
	}
	printlnFn(a.t("auth.logoutSuccess"))
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		printlnFn(a.t("api.errors.authRequired"))
		return nil
	}
	printlnFn(fmt.Sprintf("#%d %s <%s> %s role=%s", u.ID, u.FullName(), u.Email, u.Phone, u.Role))
	return nil
}

// requireAuth gates a command on a live session.
func (a *App) requireAuth() bool {
	if !a.isLoggedIn() {
		printlnFn(a.t("api.errors.authRequired"))
		return false
	}
	return true
}

// requireAdmin gates a command on the admin role.
func (a *App) requireAdmin() bool {
	if !a.isAdmin() {
		printlnFn(a.t("api.errors.adminRequired"))
		return false
	}
	return true
}
