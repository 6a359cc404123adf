package cli

import (
	"context"
	"fmt"
)

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "-Benutzername")
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	password, err := GetPassword()
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	result, err := a.session.Login(ctx, username, string(password))
	if err != nil {
		a.toasts.Error(err.Error())
		return err
	}

	if result.Message != "" {
		a.toasts.Success(result.Message)
	} else {
		a.toasts.Success("Erfolgreich angemeldet")
	}

	a.reloadAll(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.toasts.Info("Abgemeldet")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		printlnFn("Nicht angemeldet")
		return nil
	}
	if user.IsAdmin {
		printlnFn(fmt.Sprintf("%s (Administrator)", user.Username))
		return nil
	}
	party := ""
	if user.PartyID != nil {
		if p, ok := a.bookings.PartyByID(*user.PartyID); ok {
			party = ", " + p.Name
		}
	}
	printlnFn(fmt.Sprintf("%s%s", user.Username, party))
	return nil
}
