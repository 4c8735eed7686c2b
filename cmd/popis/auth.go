package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and remember the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"POPIS_PASSWORD"}, Required: true},
		},
		Action: withEnv(func(c *cli.Context, e *env) error {
			user, err := e.client.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			name := c.String("email")
			if user != nil && user.FullName != "" {
				name = user.FullName
			}
			fmt.Fprintf(e.out, "Logged in as %s\n", name)
			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "full name", Required: true},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"POPIS_PASSWORD"}, Required: true},
		},
		Action: withEnv(func(c *cli.Context, e *env) error {
			msg, err := e.client.Register(c.Context, c.String("name"), c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, orDefault(msg, "Registered"))
			return nil
		}),
	}
}

func forgotPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "forgot-password",
		Usage: "Request a password reset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true},
		},
		Action: withEnv(func(c *cli.Context, e *env) error {
			msg, err := e.client.ForgotPassword(c.Context, c.String("email"))
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, orDefault(msg, "Reset requested"))
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Action: withEnv(func(c *cli.Context, e *env) error {
			if err := e.client.Logout(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Logged out")
			return nil
		}),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
