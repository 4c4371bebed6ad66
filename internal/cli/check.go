package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flexmap/internal/config"
	"flexmap/internal/diagnostic"
	"flexmap/internal/load"
)

const maxConcurrentLoads = 8

type checkOptions struct {
	Strict bool
}

// checkResult is the outcome of loading one document.
type checkResult struct {
	Path      string
	Resource  *load.Resource
	Malformed bool
}

func newCheckCommand(a *app) *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <document>...",
		Short: "Load documents and report their diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), a, args)
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when any document has warnings")
	_ = a.v.BindPFlag(config.KeyStrict, cmd.Flags().Lookup("strict"))

	return cmd
}

func runCheck(ctx context.Context, out io.Writer, a *app, paths []string) error {
	ws, err := a.workspace(ctx)
	if err != nil {
		return err
	}

	results, err := checkDocuments(ctx, ws, paths)
	if err != nil {
		return err
	}

	malformed, warned := 0, 0

	for _, res := range results {
		renderDiagnostics(out, res)

		if res.Malformed {
			malformed++
		}

		if len(res.Resource.Warnings()) > 0 {
			warned++
		}
	}

	switch {
	case malformed > 0:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%d of %d document(s) are malformed", malformed, len(results)))
	case a.cfg.Strict && warned > 0:
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d of %d document(s) have warnings", warned, len(results)))
	}

	return nil
}

// checkDocuments loads every path with its own resource. Results keep the
// order of paths. A missing or unreadable document aborts the batch; a
// malformed one is reported through its diagnostics.
func checkDocuments(ctx context.Context, ws *workspace, paths []string) ([]checkResult, error) {
	results := make([]checkResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := ws.newResource()
			results[i] = checkResult{Path: path, Resource: r}

			if err := r.LoadFile(path, ws.options); err != nil {
				if errbuilder.CodeOf(err) != errbuilder.CodeInvalidArgument {
					return err
				}

				results[i].Malformed = true
				log.Debug().Str("document", path).Msg(errorMessage(err))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func renderDiagnostics(out io.Writer, res checkResult) {
	r := res.Resource

	fmt.Fprintf(out, "%s: %d instance(s), %d warning(s), %d error(s)\n",
		res.Path, len(r.AllContents()), len(r.Warnings()), len(r.Errors()))

	diags := r.Diagnostics()
	if len(diags) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Severity", "Code", "Message", "Did you mean"})

	for _, d := range diags {
		t.AppendRow(table.Row{lineLabel(d), d.Severity, d.Code, d.Message, strings.Join(d.Suggestions, ", ")})
	}

	t.Render()
}

func lineLabel(d diagnostic.Diagnostic) string {
	if d.Line <= 0 {
		return "-"
	}

	return fmt.Sprint(d.Line)
}
