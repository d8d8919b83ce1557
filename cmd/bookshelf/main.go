package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/bookshelf/internal/adapters/fs"
	logAdapter "github.com/bft-labs/bookshelf/internal/adapters/log"
	"github.com/bft-labs/bookshelf/internal/catalog"
	"github.com/bft-labs/bookshelf/internal/cliconfig"
)

const longHelp = `Keep track of the books in a small personal library.

Books are stored in a JSON file (library.json in the working directory by
default). Run without a command to open the interactive menu.

Configuration is read from $HOME/.bookshelf/config.toml, then BOOKSHELF_*
environment variables (a .env file in the working directory is loaded first),
then flags.`

var exampleUsage = strings.TrimSpace(`
  bookshelf
  bookshelf add --title Dune --author "Frank Herbert" --year 1965
  bookshelf search --author "frank herbert" --output json
  bookshelf status 1 checked_out
  bookshelf --store ~/books/library.json list
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries state shared by all commands of one invocation.
type app struct {
	cfg     cliconfig.Config
	cfgPath string

	in  io.Reader
	out io.Writer
	// logOut receives log lines; stderr unless a test replaces it.
	logOut io.Writer

	log     zerolog.Logger
	logger  *logAdapter.ZerologAdapter
	catalog *catalog.Catalog
}

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{in: os.Stdin, out: os.Stdout, logOut: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.log.Error().Err(err).Msg("bookshelf")
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	a.cfg = cliconfig.DefaultConfig()
	a.log = logAdapter.NewLogger(logAdapter.Config{Level: a.cfg.LogLevel, Out: a.logOut})

	root := &cobra.Command{
		Use:               "bookshelf",
		Short:             "Manage a personal library catalog",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runShell,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.bookshelf/config.toml)")
	pf.StringVar(&a.cfg.StorePath, "store", a.cfg.StorePath, "path to the library file")
	pf.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output format: table, json or yaml (default: table on a terminal, json otherwise)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error or disabled")
	pf.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format: console or json")
	pf.BoolVar(&a.cfg.Quarantine, "quarantine-corrupt", a.cfg.Quarantine, "move an unreadable library file aside instead of overwriting it")

	root.AddCommand(
		newShellCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newSearchCmd(a),
		newListCmd(a),
		newStatusCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup resolves configuration, builds the logger and opens the catalog.
// Precedence is flags, then environment, then the config file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cliconfig.ApplyFileConfig(&a.cfg, fc, changed)
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log = logAdapter.NewLogger(logAdapter.Config{
		Level:  a.cfg.LogLevel,
		Format: a.cfg.LogFormat,
		Out:    a.logOut,
	})
	a.logger = logAdapter.NewZerologAdapter(a.log)
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")

	if cmd.Name() == "watch" {
		return nil
	}

	c, err := catalog.Open(cmd.Context(), fs.NewStoreFile(a.cfg.StorePath),
		catalog.WithLogger(a.logger),
		catalog.WithQuarantine(a.cfg.Quarantine),
	)
	if err != nil {
		return err
	}
	a.catalog = c
	return nil
}

// errNotFound is returned by one-shot commands given an unknown id.
var errNotFound = errors.New("book not found")
