// Package cliapp wires command.Table into a cobra command tree, the
// way gridhouse and calvinalkan's task runner expose their subsystems
// as cobra subcommands with pflag-backed global options rather than a
// bespoke flag parser.
package cliapp

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vpol/redis/internal/command"
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/keyspace"
	"github.com/vpol/redis/internal/repl"
)

// App bundles one long-lived Env behind the process's lifetime, so
// successive CLI invocations within one run (or one interactive
// session, if wired to a REPL front-end later) share state the way a
// real server's single keyspace would.
type App struct {
	env *command.Env
	log *logrus.Logger
}

// New builds the cobra root command and its one subcommand per
// command.Table entry. cfg carries the promotion threshold and log
// level; every subcommand shares one in-memory keyspace for the life
// of the process.
func New(cfg config.Config) *cobra.Command {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	app := &App{
		env: command.NewEnv(keyspace.NewMemory(), noopShim{}, command.NopEvents{}, nil, cfg.IntsetMaxEntries),
		log: log,
	}
	app.env.Log = log

	root := &cobra.Command{
		Use:   "redis-sets",
		Short: "A standalone driver for the SET command surface (SADD, SPOP, SINTER, ...).",
		Long: "redis-sets runs SingleKeyOps and MultiKeyOps commands against an in-memory\n" +
			"keyspace for exploration and scripting, without a network server attached.",
	}
	fs := config.FlagSet(&cfg)
	root.PersistentFlags().AddFlagSet(fs)
	// Flags are parsed after the Env was built; carry the parsed values
	// over before any subcommand runs.
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if cfg.IntsetMaxEntries > 0 {
			app.env.MaxIntsetEntries = cfg.IntsetMaxEntries
		}
		if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(lvl)
		}
	}

	for _, c := range command.Table {
		root.AddCommand(app.subcommand(c))
	}
	return root
}

// noopShim discards every propagation request; the CLI has no AOF or
// replica link to feed.
type noopShim struct{}

func (noopShim) Propagate([]string, repl.Mode) {}
func (noopShim) RewriteCurrent([]string)        {}
func (noopShim) SuppressCurrent()               {}

func (a *App) subcommand(c command.Command) *cobra.Command {
	return &cobra.Command{
		Use:   strings.ToLower(c.Name) + " [args...]",
		Short: c.Description,
		Args:  cobra.MinimumNArgs(c.MinArgs - 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := append([]string{strings.ToUpper(c.Name)}, args...)
			rep, err := command.Dispatch(a.env, argv)
			if err != nil {
				return err
			}
			printReply(cmd, rep)
			return nil
		},
	}
}

func printReply(cmd *cobra.Command, rep command.Reply) {
	out := cmd.OutOrStdout()
	switch rep.Kind {
	case command.KindInt:
		fmt.Fprintln(out, rep.Int)
	case command.KindNilBulk:
		fmt.Fprintln(out, "(nil)")
	case command.KindBulk:
		fmt.Fprintln(out, rep.Bulk)
	case command.KindArray:
		for _, v := range rep.Array {
			fmt.Fprintln(out, v)
		}
	case command.KindScan:
		fmt.Fprintln(out, rep.Int)
		for _, v := range rep.Array {
			fmt.Fprintln(out, v)
		}
	}
}
