package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-cargotoml"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	out        io.Writer
	errOut     io.Writer
	configFile string
	settings   *settings
	log        *slog.Logger
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	a := &app{out: outW, errOut: errW, log: slog.Default()}

	root := &cobra.Command{
		Use:   "cargotoml",
		Short: "Decode Cargo manifests and lockfiles",
		Long: `cargotoml decodes a Cargo.toml or Cargo.lock into its typed model and
prints the result. Decoding errors are reported with the key path and the
source position of the offending value.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = s

			level := slog.LevelWarn
			if s.Verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
			a.log.Debug("settings loaded", "config", a.configFile, "format", s.Format, "max-depth", s.MaxDepth, "strict", s.Strict)
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file with format, max-depth and strict keys")
	flags.String(keyFormat, defaultFormat, "output format: text, json, yaml or spew")
	flags.Bool(keyStrict, false, "reject keys the model does not declare")
	flags.Int(keyMaxDepth, defaultMaxDepth, "maximum nesting of tables and arrays, root table included")
	flags.BoolP(keyVerbose, "v", false, "log progress to stderr")

	root.AddCommand(newManifestCmd(a))
	root.AddCommand(newLockCmd(a))
	return root
}

// decodeOptions translates the settings into decoder options.
func (a *app) decodeOptions() []cargotoml.Option {
	opts := []cargotoml.Option{cargotoml.MaxDepth(a.settings.MaxDepth)}
	if a.settings.Strict {
		opts = append(opts, cargotoml.DisallowUnknownFields())
	}
	return opts
}

// pathArg returns the single optional path argument or def.
func pathArg(args []string, def string) string {
	if len(args) > 0 {
		return args[0]
	}
	return def
}
