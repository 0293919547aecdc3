package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/giygas/midi-sysex-ids/interfaces"
	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/metrics"
	"github.com/giygas/midi-sysex-ids/summary"
	"github.com/giygas/midi-sysex-ids/sysexparser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type ConvertOptions struct {
	GlobalOptions

	Input       string
	Output      string
	DryRun      bool
	MetricsFile string

	// Converter is built from the options when nil
	Converter interfaces.Converter
}

func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdConvert() *cobra.Command {
	o := DefaultConvertOptions()
	cmd := &cobra.Command{
		Use:          "convert",
		Short:        "Convert the manufacturer id registry CSV into ids.json.",
		Args:         cobra.NoArgs,
		RunE:         o.runE,
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ConvertOptions) runE(cmd *cobra.Command, args []string) error {
	if err := o.Complete(cmd, args); err != nil {
		return err
	}
	if err := o.Validate(args); err != nil {
		return err
	}
	return o.Run(cmd.Context(), cmd.OutOrStdout())
}

func (o *ConvertOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Input, "input", "i", o.Input, "Registry CSV to read. Overrides SYSEX_INPUT (default midi_sysex_ids.csv).")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "JSON file to write. Overrides SYSEX_OUTPUT (default ids.json).")
	fs.BoolVar(&o.DryRun, "dry-run", o.DryRun, "Convert and report without writing the output file.")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "Write Prometheus textfile metrics here (*.prom). Overrides METRICS_FILE.")
}

func (o *ConvertOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("input") {
		o.Config.InputPath = o.Input
	}
	if fs.Changed("output") {
		o.Config.OutputPath = o.Output
	}
	if fs.Changed("metrics-file") {
		o.Config.MetricsFile = o.MetricsFile
	}

	if o.Converter == nil {
		p := sysexparser.NewSysexParser()
		p.DryRun = o.DryRun
		o.Converter = p
	}
	return nil
}

func (o *ConvertOptions) Validate(args []string) error {
	return o.GlobalOptions.Validate(args)
}

func (o *ConvertOptions) Run(ctx context.Context, out io.Writer) error {
	defer o.startLogging()()

	if ctx == nil {
		ctx = context.Background()
	}

	result, err := o.Converter.Convert(ctx, o.Config.InputPath, o.Config.OutputPath)
	o.writeMetrics()
	if err != nil {
		// Row failures were already reported with the offending row
		if errors.Is(err, sysexparser.ErrParse) {
			return err
		}
		logging.Error("Registry conversion failed",
			"input", o.Config.InputPath,
			"output", o.Config.OutputPath,
			"kind", sysexparser.ErrorKind(err),
			"error", err)
		return err
	}

	summary.Log(summary.NewReporter().Report(result.Records))

	verb := "wrote"
	if !result.Written {
		verb = "would write"
	}
	fmt.Fprintf(out, "%s %d records to %s (%s)\n",
		verb, len(result.Records), o.Config.OutputPath, humanize.Bytes(uint64(result.Size)))
	return nil
}

// writeMetrics exports the metrics registry when a textfile is configured.
// Failing to export never changes the outcome of the conversion.
func (o *ConvertOptions) writeMetrics() {
	if o.Config.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(o.Config.MetricsFile); err != nil {
		logging.Warn("Failed to write metrics textfile", "path", o.Config.MetricsFile, "error", err)
	}
}
