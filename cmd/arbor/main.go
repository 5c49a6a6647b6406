package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tomaskoller/arbor/internal/cli"
	"github.com/tomaskoller/arbor/internal/constants"
	apperrors "github.com/tomaskoller/arbor/internal/errors"
	"github.com/tomaskoller/arbor/internal/logger"
	"github.com/tomaskoller/arbor/internal/notifier"
	"github.com/tomaskoller/arbor/internal/reminder"
	"github.com/tomaskoller/arbor/internal/storage"
	"github.com/tomaskoller/arbor/internal/store"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path. A path ending in .db uses SQLite, anything else is treated as a JSON data directory." default:"~/.config/arbor/arbor.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize arbor storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Show today's tree and habit progress."`
	Add      cli.AddCmd      `cmd:"" help:"Add a new habit."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit an existing habit."`
	Done     cli.DoneCmd     `cmd:"" help:"Mark a habit done (or undo it)."`
	List     cli.ListCmd     `cmd:"" help:"List habits."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a habit (soft delete)."`
	Restore  cli.RestoreCmd  `cmd:"" help:"Restore a deleted habit."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Reset    cli.ResetCmd    `cmd:"" help:"Remove all habits, history and settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("arbor"),
		kong.Description("Habit tracker that grows a tree from your daily progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		apperrors.Fatal(err)
	}

	var gw storage.Gateway
	if strings.HasSuffix(configPath, ".db") {
		sqlite := storage.NewSQLiteGateway(configPath)
		if err := sqlite.Open(); err != nil {
			apperrors.Fatal(err)
		}
		gw = sqlite
	} else {
		gw = storage.NewJSONGateway(configPath)
	}
	defer gw.Close()

	habitStore := store.New(reminder.New(notifier.New()))
	habitStore.OnWarning = func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	sync := store.NewSynchronizer(gw, habitStore, constants.SnapshotDebounce)
	sync.Hydrate()

	appCtx := &cli.Context{
		Store:      habitStore,
		Sync:       sync,
		ConfigPath: configPath,
	}

	err := ctx.Run(appCtx)
	if flushErr := sync.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		gw.Close()
		apperrors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
