package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/cli/backups"
	"github.com/julianstephens/habitkit/internal/cli/categories"
	"github.com/julianstephens/habitkit/internal/cli/habits"
	"github.com/julianstephens/habitkit/internal/cli/settings"
	"github.com/julianstephens/habitkit/internal/cli/system"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/pubsub"
	"github.com/julianstephens/habitkit/internal/storage/sqlite"
	"github.com/julianstephens/habitkit/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/habitkit/habitkit.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd         `cmd:"" help:"Initialize habitkit storage."`
	Migrate  system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Import   system.ImportCmd       `cmd:"" help:"Import habits and categories from a YAML file."`
	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits and completion tracking."`
	Category categories.CategoryCmd `cmd:"" help:"Manage habit categories."`
	Trash    cli.TrashCmd           `cmd:"" help:"List soft-deleted habits and categories."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with goals, categories, and completion calendars"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	// Load the store before running the command; init handles its own setup.
	if ctx.Selected() == nil || ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Tracker = tracker.NewService(store, pubsub.NewBroker())
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
