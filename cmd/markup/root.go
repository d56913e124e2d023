package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/grindlemire/go-markup/internal/config"
	"github.com/grindlemire/go-markup/internal/logging"
)

// app holds the state shared by every subcommand once the configuration
// has been loaded.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg    *config.Config
	log    logging.Logger
	stdout io.Writer
	stderr io.Writer
}

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"source-map":   "generate.source_map",
	"skip-imports": "generate.skip_imports",
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "markup",
		Short: "Compile .gsx markup templates into Go code",
		Long: `markup compiles .gsx files, Go source with embedded HTML templates,
into plain Go that writes escaped HTML through the go-markup runtime.

Configuration is read from .markup.yml (or the file named by --config or
MARKUP_CONFIG_FILE) and MARKUP_<SECTION>_<KEY> environment variables.

Examples:
  markup generate ./...           Compile every .gsx file below the current directory
  markup check --format json .    Report diagnostics as JSON
  markup watch ./views/...        Regenerate on change`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is .markup.yml, can also use MARKUP_CONFIG_FILE)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	root.AddCommand(
		newGenerateCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// load reads the configuration for cmd and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	if err := bindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.stderr,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug(cmd.Context(), "using config file", "path", used)
	}
	return nil
}

// bindFlags lets the flags of the running command override config keys.
// A flag the user did not set only applies when nothing else sets the key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}
