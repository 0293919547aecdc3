package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/registry"
	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type LookupOptions struct {
	GlobalOptions

	IDsPath string

	message []byte
}

func DefaultLookupOptions() *LookupOptions {
	return &LookupOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdLookup() *cobra.Command {
	o := DefaultLookupOptions()
	cmd := &cobra.Command{
		Use:   "lookup BYTE...",
		Short: "Resolve the manufacturer of a SysEx message.",
		Long: `Resolve the manufacturer of a SysEx message using a generated ids.json.

Bytes are hex, space separated or dotted, with an optional leading F0:
  sysexids lookup F0 41 10 42
  sysexids lookup 00.21.1D`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *LookupOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVar(&o.IDsPath, "ids", o.IDsPath, "Generated ids.json to search. Defaults to SYSEX_OUTPUT.")
}

func (o *LookupOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	if o.IDsPath == "" {
		o.IDsPath = o.Config.OutputPath
	}
	return nil
}

func (o *LookupOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}

	msg, err := registry.ParseMessage(args)
	if err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	o.message = msg
	return nil
}

func (o *LookupOptions) Run(ctx context.Context, out io.Writer) error {
	defer o.startLogging()()

	reg, err := registry.Load(o.IDsPath)
	if err != nil {
		logging.Error("Failed to load registry", "path", o.IDsPath, "error", err)
		return err
	}

	rec, err := reg.Lookup(o.message)
	if err != nil {
		return err
	}

	return printRecord(out, rec)
}

func printRecord(out io.Writer, rec entities.ManufacturerID) error {
	w := tabwriter.NewWriter(out, 0, 8, 1, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", rec.Key())
	fmt.Fprintf(w, "MANUFACTURER:\t%s\n", rec.Manufacturer)
	fmt.Fprintf(w, "GROUP:\t%s\n", rec.Group)
	if rec.Status != "" {
		fmt.Fprintf(w, "STATUS:\t%s\n", rec.Status)
	}
	fmt.Fprintf(w, "RESERVED:\t%t\n", rec.Reserved)
	return w.Flush()
}
