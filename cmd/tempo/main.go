package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/jmserra/tempo/internal/cli"
	"github.com/jmserra/tempo/internal/constants"
	errs "github.com/jmserra/tempo/internal/errors"
	"github.com/jmserra/tempo/internal/habit"
	"github.com/jmserra/tempo/internal/logger"
	"github.com/jmserra/tempo/internal/pomo"
	"github.com/jmserra/tempo/internal/recur"
	"github.com/jmserra/tempo/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/tempo/tempo.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd      `cmd:"" help:"Initialize tempo storage."`
	List  cli.TaskListCmd  `cmd:"" help:"List tasks." default:"1"`
	Add   cli.TaskAddCmd   `cmd:"" help:"Add a plain task."`
	Done  cli.TaskDoneCmd  `cmd:"" help:"Complete a task or occurrence."`
	Start cli.TaskStartCmd `cmd:"" help:"Start working on a task."`
	Stop  cli.TaskStopCmd  `cmd:"" help:"Put a task back to todo."`
	Skip  cli.TaskSkipCmd  `cmd:"" help:"Skip a recurring occurrence."`
	Drop  cli.TaskDropCmd  `cmd:"" help:"Delete a task or occurrence."`
	Recur struct {
		Add    cli.RecurAddCmd    `cmd:"" help:"Add a recurring task."`
		List   cli.RecurListCmd   `cmd:"" help:"List recurring tasks." default:"1"`
		Pause  cli.RecurPauseCmd  `cmd:"" help:"Pause occurrence generation."`
		Resume cli.RecurResumeCmd `cmd:"" help:"Resume occurrence generation."`
		Delete cli.RecurDeleteCmd `cmd:"" help:"Delete a recurring task and its history."`
		Stats  cli.RecurStatsCmd  `cmd:"" help:"Show completion stats for a recurring task."`
	} `cmd:"" help:"Manage recurring tasks."`
	Habit cli.HabitCmd `cmd:"" help:"Track daily habits."`
	Pomo  cli.PomoCmd  `cmd:"" help:"Log pomodoro sessions."`
	Watch cli.WatchCmd `cmd:"" help:"Run the generation loop in the foreground."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tempo"),
		kong.Description("Local-first recurring tasks, habits, and focus log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store := storage.NewSQLiteStore(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(store.GetConfigPath())}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	engine := recur.New(store, nil)
	appCtx := &cli.Context{
		Store:  store,
		Engine: engine,
		Habits: habit.NewService(store, nil),
		Pomos:  pomo.NewService(store, nil),
	}

	// Init handles its own setup; everything else needs a loaded store and
	// a fresh generation pass so new occurrences show up on any command.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errs.Fatal(err)
		}
		if err := engine.Load(); err != nil {
			errs.Fatal(err)
		}
		engine.Process(engine.Now())
	}

	err := ctx.Run(appCtx)
	engine.Flush()
	if err != nil {
		errs.Fatal(err)
	}
}
