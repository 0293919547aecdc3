package cli

import (
	"github.com/giygas/midi-sysex-ids/config"
	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const appName = "sysexids"

// GlobalOptions carries what every command needs: configuration and logging.
type GlobalOptions struct {
	LogLevel string
	LogFile  string

	Config *config.Config
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level (debug, info, warn, error). Overrides LOG_LEVEL.")
	fs.StringVar(&o.LogFile, "log-file", o.LogFile, "Also append JSON logs to this file. Overrides LOG_FILE.")
}

// Complete loads .env and the environment, then applies the flags that were set explicitly.
func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.LogFile
	}

	o.Config = cfg
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return o.Config.Validate()
}

// startLogging initialises the global logger; the returned func releases it.
func (o *GlobalOptions) startLogging() func() {
	logging.InitLogger(o.Config.LogLevel, o.Config.LogFile)
	return func() {
		_ = logging.Close()
	}
}
