package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"flexmap/internal/common"
	"flexmap/internal/metamodel"
	"flexmap/internal/schemaindex"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "List the concrete classes of the loaded schemas and their features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd.Context(), cmd.OutOrStdout(), a)
		},
	}
}

func runSchema(ctx context.Context, out io.Writer, a *app) error {
	ws, err := a.workspace(ctx)
	if err != nil {
		return err
	}

	if common.IsEmpty(ws.packages) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no schema given (use --schema or the schemas config key)")
	}

	idx := schemaindex.New(ws.registry)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Class", "Package", "Feature", "Kind", "Type"})

	for _, c := range idx.ConcreteClassifiers() {
		features := idx.CandidateFeatures(c)
		if common.IsEmpty(features) {
			t.AppendRow(table.Row{c.Name, c.Package.Name, "-", "", ""})
			continue
		}

		for _, f := range features {
			t.AppendRow(table.Row{c.Name, c.Package.Name, f.Name, featureKind(f), featureType(f)})
		}

		t.AppendSeparator()
	}

	t.Render()

	return nil
}

func featureKind(f *metamodel.Feature) string {
	kind := f.Kind.String()
	if f.Many {
		kind += " *"
	}

	return kind
}

func featureType(f *metamodel.Feature) string {
	switch {
	case f.IsAttribute() && f.DataType != nil:
		if f.DataType.Kind == metamodel.ValueKindEnum {
			return fmt.Sprintf("%s {%s}", f.DataType.Name, strings.Join(f.DataType.Literals, "|"))
		}

		return f.DataType.Name
	case f.Target != nil:
		return f.Target.Name
	default:
		return ""
	}
}
