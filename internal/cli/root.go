// Package cli implements the flexmap command line.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flexmap/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

type rootOptions struct {
	ConfigFile string
	LogLevel   string
	Schemas    []string
	Similarity string
	Options    map[string]string
}

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v    *viper.Viper
	opts rootOptions
	cfg  *config.Config
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Msg(errorMessage(err))
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "flexmap",
		Short:        "Map loosely written XML documents onto schema object graphs",
		Version:      version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.opts.ConfigFile)
			if err != nil {
				return err
			}

			a.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.LogLevel)

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&a.opts.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringSliceVar(&a.opts.Schemas, "schema", nil, "Schema YAML files, in registration order")
	flags.StringVar(&a.opts.Similarity, "similarity", "", "Fuzzy similarity strategy (lcs, levenshtein)")
	flags.StringToStringVar(&a.opts.Options, "option", nil, "Load option key=value, repeatable")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeySchemas, flags.Lookup("schema"))
	_ = a.v.BindPFlag(config.KeySimilarity, flags.Lookup("similarity"))

	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newDumpCommand(a))
	cmd.AddCommand(newSchemaCommand(a))
	cmd.AddCommand(newWatchCommand(a))

	return cmd
}

func setupLogging(w io.Writer, level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 1
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}

	return err.Error()
}
