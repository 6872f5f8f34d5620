package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkeep/internal/cli"
	"github.com/julianstephens/habitkeep/internal/constants"
	"github.com/julianstephens/habitkeep/internal/errors"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/storage"
	"github.com/julianstephens/habitkeep/internal/timeutil"
	"github.com/julianstephens/habitkeep/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"~/.config/habitkeep/habitkeep.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habitkeep storage."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Status cli.StatusCmd `cmd:"" help:"Record and view daily statuses." default:"1"`
	Notify cli.NotifyCmd `cmd:"" help:"Manage reminder settings."`
	Watch  cli.WatchCmd  `cmd:"" help:"Run the reminder watcher."`
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks and morning/evening reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := storage.NewJSONStore(configPath)
	clock := timeutil.SystemClock()

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store, clock),
		Clock:   clock,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
