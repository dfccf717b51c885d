package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindpilot/commandhq/internal/tui"
)

type TuiCmd struct{}

func (cmd *TuiCmd) Run(ctx *Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.App), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
