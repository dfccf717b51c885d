package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/coach"
	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/keyring"
	"github.com/mindpilot/commandhq/internal/notifier"
)

type DoctorCmd struct{}

var (
	checkOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	checkWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	checkFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Printf("Store: %s\n\n", ctx.Store.GetConfigPath())

	if _, err := ctx.Store.GetProfile(); err != nil {
		reportCheck("storage", checkFail, err.Error())
	} else {
		reportCheck("storage", checkOK, "profile readable")
	}

	if auth, err := ctx.Store.IsAuthenticated(); err != nil {
		reportCheck("session", checkFail, err.Error())
	} else if auth {
		reportCheck("session", checkOK, "operator logged in")
	} else {
		reportCheck("session", checkWarn, "no open session, run 'hq auth login'")
	}

	if keyring.IsAvailable() {
		reportCheck("keyring", checkOK, "system keyring reachable")
	} else {
		reportCheck("keyring", checkWarn, "system keyring unavailable, secrets cannot be stored")
	}

	if _, err := coach.ResolveAPIKey(); err != nil {
		reportCheck("coach", checkWarn, "no Gemini API key, coach commands are offline")
	} else {
		reportCheck("coach", checkOK, "API key configured")
	}

	trayDir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		reportCheck("tray", checkWarn, "tray config dir unresolved: "+err.Error())
		return nil
	}
	lockfile := filepath.Join(trayDir, constants.NotifierLockfileName)
	if _, err := os.Stat(lockfile); err != nil {
		reportCheck("tray", checkWarn, "tray app not running, alarms print to the terminal only")
	} else if err := notifier.New().Notify("CommandHQ", "Diagnostic ping"); err != nil {
		reportCheck("tray", checkFail, "lockfile present but tray unreachable: "+err.Error())
	} else {
		reportCheck("tray", checkOK, "tray app responding")
	}
	return nil
}

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

func reportCheck(name string, status checkStatus, detail string) {
	var mark string
	switch status {
	case checkOK:
		mark = checkOKStyle.Render("PASS")
	case checkWarn:
		mark = checkWarnStyle.Render("WARN")
	default:
		mark = checkFailStyle.Render("FAIL")
	}
	fmt.Printf("[%s] %-8s %s\n", mark, name, detail)
}
