package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/tnebes/sme/shmap"
)

type Context struct {
	editor *shmap.Editor
	log    *logrus.Logger
	out    io.Writer

	force  bool
	dryRun bool
}

var CLI struct {
	Config    string   `optional:"" help:"Configuration file. By default sme.yaml is searched in the working directory and the user config directory."`
	LogLevel  string   `optional:"" help:"Log level: trace, debug, info, warn or error."`
	LogFile   string   `optional:"" help:"File to append logs to (default sme.log)."`
	NoLogFile bool     `optional:"" help:"Only log to the console."`
	Backup    bool     `optional:"" help:"Keep the unpatched map as <file>.bak."`
	DryRun    bool     `optional:"" help:"Compute and report the patch without writing it."`
	Force     bool     `optional:"" help:"Accept files without the .map extension."`
	Rule      []string `optional:"" help:"Override an action rule as action=delta:payload, e.g. siege=-4:0100."`

	Unlock   UnlockCmd   `cmd:"" help:"Unlock the map."`
	Invasion InvasionCmd `cmd:"" help:"Turn the map into an invasion map."`
	Siege    SiegeCmd    `cmd:"" help:"Turn the map into a siege map."`
	Apply    ApplyCmd    `cmd:"" help:"Apply an action given by name."`

	Inspect InspectCmd `cmd:"" help:"Show the resolved offsets and the bytes each action would write."`
	Rules   RulesCmd   `cmd:"" help:"List the effective action rules."`
	Menu    MenuCmd    `cmd:"" help:"Interactive console menu."`
}

func main() {
	k, err := kong.New(&CLI,
		kong.Name("sme"),
		kong.Description("Stronghold map editor: unlock maps and switch them between invasion and siege."),
		kong.NamedMapper("int", intMapper{}),
		kong.NamedMapper("action", actionMapper{}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return
	}

	config, err := loadConfig(CLI.Config)
	ctx.FatalIfErrorf(err)
	config.applyFlags()

	log, closeLog, err := newLogger(config.LogLevel, config.LogFile)
	ctx.FatalIfErrorf(err)

	log.Debug("Application starting...")

	rules, err := config.RuleTable(CLI.Rule)
	ctx.FatalIfErrorf(err)

	editor, err := shmap.New(shmap.Config{
		Rules:  rules,
		Backup: config.Backup,
		DryRun: config.DryRun,

		LogFunc: editorLogFunc(log),
	})
	ctx.FatalIfErrorf(err)

	c := &Context{
		editor: editor,
		log:    log,
		out:    os.Stdout,

		force:  CLI.Force,
		dryRun: config.DryRun,
	}

	code := finish(log, ctx.Run(c))
	closeLog()
	os.Exit(code)
}

// finish reports the outcome of a command once and returns the exit status.
func finish(log logrus.FieldLogger, err error) int {
	if err != nil {
		log.WithField("kind", shmap.KindOf(err)).Error(err)
		return 1
	}
	log.Debug("Application shutting down.")
	return 0
}
