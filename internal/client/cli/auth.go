package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	user, err := a.client.Register(ctx, userName, string(password))
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Registered user %s (id %d). You can log in now.\n", user.Username, user.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	if err := a.client.Login(ctx, userName, string(password)); err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.userName = userName
	fmt.Println("Success!")
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
