package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"github.com/mindpilot/commandhq/internal/cli"
	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/errutil"
	"github.com/mindpilot/commandhq/internal/ident"
	"github.com/mindpilot/commandhq/internal/keyring"
	"github.com/mindpilot/commandhq/internal/logger"
	"github.com/mindpilot/commandhq/internal/state"
	"github.com/mindpilot/commandhq/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store location: a .db path, a .json path, or 'postgres' to use the keyring connection string." type:"path" env:"COMMANDHQ_DB_CONNECTION" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize the command post."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Auth    cli.AuthCmd    `cmd:"" help:"Manage the operator session and stored secrets."`
	Habit   cli.HabitCmd   `cmd:"" help:"Manage protocols."`
	Deploy  cli.DeployCmd  `cmd:"" help:"Deploy a protocol from the template library."`
	Day     cli.DayCmd     `cmd:"" help:"Show the day's operations grouped by phase."`
	Report  cli.ReportCmd  `cmd:"" help:"File a mission report."`
	Focus   cli.FocusCmd   `cmd:"" help:"Run a focus session with breach tracking."`
	Watch   cli.WatchCmd   `cmd:"" help:"Run the alarm watch loop."`
	Coach   cli.CoachCmd   `cmd:"" help:"Talk to the tactical coach."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show the readiness report."`
	History cli.HistoryCmd `cmd:"" help:"Show mission logs."`
	Profile cli.ProfileCmd `cmd:"" help:"Show or update the operator profile."`
	Backup  cli.BackupCmd  `cmd:"" help:"Manage store backups."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run installation health checks."`
	Notify  cli.NotifyCmd  `cmd:"" hidden:"" help:"Send a raw tray notification."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("hq"),
		kong.Description("Tactical habit command center"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	location := CLI.Config
	if storage.IsPostgresConnString(location) {
		// Connection strings on the command line leak credentials into shell
		// history; they belong in the keyring.
		errutil.Fatal(fmt.Errorf("connection strings are not accepted here; store one with 'hq auth db' and use --config postgres"))
	}
	// The path mapper absolutizes the flag, so match on the final element.
	if filepath.Base(location) == "postgres" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			errutil.Fatalf("no connection string in keyring, run 'hq auth db' first: %v", err)
		}
		location = connStr
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(location)}); err != nil {
		fmt.Fprintln(os.Stderr, errutil.Format(err))
	}

	store := storage.NewProvider(location)
	app := state.New(store, ident.UUID{}, time.Now)
	appCtx := &cli.Context{
		Store: store,
		App:   app,
		Debug: CLI.Debug,
	}

	// Every command except init expects a loaded store.
	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			errutil.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintln(os.Stderr, errutil.Format(err))
		os.Exit(1)
	}
}

// logDir picks where log files live. Postgres stores have no local data
// directory, so logs fall back to the user config dir.
func logDir(location string) string {
	if storage.IsPostgresConnString(location) {
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, constants.AppName)
		}
		return os.TempDir()
	}
	return filepath.Dir(location)
}
