package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"flexmap/internal/config"
	"flexmap/internal/export"
)

func newDumpCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <document>",
		Short: "Load a document and print its object graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), cmd.OutOrStdout(), a, args[0])
		},
	}
	cmd.Flags().StringVar(&format, "format", config.DefaultFormat, "Output format (tree, yaml, debug)")
	_ = a.v.BindPFlag(config.KeyFormat, cmd.Flags().Lookup("format"))

	return cmd
}

func runDump(ctx context.Context, out io.Writer, a *app, path string) error {
	format, err := export.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	ws, err := a.workspace(ctx)
	if err != nil {
		return err
	}

	r := ws.newResource()
	if err := r.LoadFile(path, ws.options); err != nil {
		return err
	}

	for _, d := range r.Diagnostics() {
		fmt.Fprintln(out, "# "+d.String())
	}

	return export.Write(out, format, r.Contents(), r.Line)
}
