package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mindpilot/commandhq/internal/keyring"
	"github.com/mindpilot/commandhq/internal/storage"
)

type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Register your operator callsign and open a session."`
	Logout AuthLogoutCmd `cmd:"" help:"Close the current session."`
	Key    AuthKeyCmd    `cmd:"" help:"Store or clear the Gemini API key in the system keyring."`
	DB     AuthDBCmd     `cmd:"" name:"db" help:"Store or clear the Postgres connection string in the system keyring."`
}

type AuthLoginCmd struct {
	Name string `help:"Operator callsign." short:"n"`
}

func (cmd *AuthLoginCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Operator callsign").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("callsign is required")
						}
						return nil
					}),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	}
	profile, err := ctx.App.Login(name)
	if err != nil {
		return err
	}
	fmt.Printf("Session open. Welcome back, Operator %s.\n", profile.Name)
	return nil
}

type AuthLogoutCmd struct{}

func (cmd *AuthLogoutCmd) Run(ctx *Context) error {
	if err := ctx.App.Logout(); err != nil {
		return err
	}
	fmt.Println("Session closed.")
	return nil
}

type AuthKeyCmd struct {
	Key   string `arg:"" optional:"" help:"Gemini API key. Omit to be prompted."`
	Clear bool   `help:"Remove the stored API key."`
}

func (cmd *AuthKeyCmd) Run(ctx *Context) error {
	if cmd.Clear {
		if err := keyring.DeleteAPIKey(); err != nil {
			return err
		}
		fmt.Println("API key cleared from keyring.")
		return nil
	}

	key := cmd.Key
	if key == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Gemini API key").
					EchoMode(huh.EchoModePassword).
					Value(&key),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("API key is required")
	}
	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("API key stored in keyring.")
	return nil
}

type AuthDBCmd struct {
	ConnString string `arg:"" optional:"" help:"Postgres connection string. Omit to be prompted."`
	Clear      bool   `help:"Remove the stored connection string."`
}

func (cmd *AuthDBCmd) Run(ctx *Context) error {
	if cmd.Clear {
		if err := keyring.DeleteConnectionString(); err != nil {
			return err
		}
		fmt.Println("Connection string cleared from keyring.")
		return nil
	}

	conn := cmd.ConnString
	if conn == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Postgres connection string").
					EchoMode(huh.EchoModePassword).
					Value(&conn),
			),
		).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
	}
	if !storage.IsPostgresConnString(conn) {
		return fmt.Errorf("connection string must start with postgres:// or postgresql://")
	}
	if err := keyring.SetConnectionString(conn); err != nil {
		return err
	}
	fmt.Println("Connection string stored in keyring.")
	if !storage.HasEmbeddedCredentials(conn) {
		fmt.Println("Note: no password is embedded; the server must accept another auth method.")
	}
	return nil
}
