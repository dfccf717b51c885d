package cli

import "github.com/mindpilot/commandhq/internal/notifier"

// NotifyCmd sends a raw notification through the tray webhook. Hidden; used
// for scripting and for exercising the tray integration.
type NotifyCmd struct {
	Title string `arg:"" help:"Notification title."`
	Body  string `arg:"" optional:"" help:"Notification body."`
}

func (cmd *NotifyCmd) Run(ctx *Context) error {
	return notifier.New().Notify(cmd.Title, cmd.Body)
}
