package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zeebo/xxh3"

	"flexmap/internal/config"
	"flexmap/internal/load"
)

func newWatchCommand(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <document>",
		Short: "Reload a document whenever it changes and print its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace(cmd.Context())
			if err != nil {
				return err
			}

			w, err := newDocumentWatcher(args[0], ws, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return w.run(cmd.Context(), a.cfg.Debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultDebounce, "Quiet period before reloading")
	_ = a.v.BindPFlag(config.KeyDebounce, cmd.Flags().Lookup("debounce"))

	return cmd
}

// documentWatcher reloads one document into one resource. Reloads happen on
// the goroutine calling run, one at a time.
type documentWatcher struct {
	path string
	ws   *workspace
	res  *load.Resource
	out  io.Writer

	sum    uint64
	loaded bool
}

func newDocumentWatcher(path string, ws *workspace, out io.Writer) (*documentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid document path %s", path)).
			WithCause(err)
	}

	return &documentWatcher{path: abs, ws: ws, res: ws.newResource(), out: out}, nil
}

// reload loads the document unless its content hash matches the last load.
// It reports whether a load happened.
func (w *documentWatcher) reload() (bool, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}

		return false, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to read document %s", w.path)).
			WithCause(err)
	}

	sum := xxh3.Hash(data)
	if w.loaded && sum == w.sum {
		log.Debug().Str("document", w.path).Msg("content unchanged, reload skipped")
		return false, nil
	}

	w.sum, w.loaded = sum, true

	res := checkResult{Path: w.path, Resource: w.res}
	if err := w.res.Load(bytes.NewReader(data), w.ws.options); err != nil {
		if errbuilder.CodeOf(err) != errbuilder.CodeInvalidArgument {
			return true, err
		}

		res.Malformed = true
	}

	renderDiagnostics(w.out, res)

	return true, nil
}

func (w *documentWatcher) run(ctx context.Context, debounce time.Duration) error {
	if _, err := w.reload(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to watch %s", filepath.Dir(w.path))).
			WithCause(err)
	}

	log.Info().Str("document", w.path).Msg("watching for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn().Err(err).Msg("watch error")

		case <-fire:
			fire = nil

			if _, err := w.reload(); err != nil {
				log.Warn().Str("document", w.path).Msg(errorMessage(err))
			}
		}
	}
}
