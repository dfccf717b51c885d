package cli

import "fmt"

type InitCmd struct{}

func (cmd *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Command post established at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Run 'hq auth login' to register your operator callsign.")
	return nil
}
