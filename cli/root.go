// Package cli wires the sysexids commands.
package cli

import (
	"strings"

	"github.com/giygas/midi-sysex-ids/config"
	"github.com/spf13/cobra"
)

// NewSysexIDsCommand returns the root command. Without a subcommand it converts.
func NewSysexIDsCommand() *cobra.Command {
	o := DefaultConvertOptions()
	cmd := &cobra.Command{
		Use:   appName,
		Short: appName + " converts the MIDI SysEx manufacturer id registry into JSON.",
		Long: appName + ` converts the MIDI SysEx manufacturer id registry (midi_sysex_ids.csv)
into ids.json and looks up manufacturers in the generated file.

Running it without a subcommand is the same as "` + appName + ` convert".

Environment (also read from .env): ` + strings.Join(config.GetEnvVars(), ", "),
		Args:         cobra.NoArgs,
		RunE:         o.runE,
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())

	cmd.AddCommand(NewCmdConvert())
	cmd.AddCommand(NewCmdLookup())
	return cmd
}
