package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-cargotoml"
)

func newLockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lock [path]",
		Short: "Decode a Cargo.lock",
		Long:  `Decode a Cargo.lock (default: ./Cargo.lock) and print its packages.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args, "Cargo.lock")
			a.log.Debug("reading lockfile", "path", path)

			l, err := cargotoml.ReadLockfile(path, a.decodeOptions()...)
			if err != nil {
				return err
			}
			if !l.IsSupported() {
				a.log.Warn("unsupported lockfile version", "path", path, "version", l.Version)
			}
			a.log.Debug("lockfile decoded", "path", path, "packages", len(l.Packages))
			return render(a.out, a.settings.Format, l, func(w io.Writer) error {
				return writeLockText(w, l)
			})
		},
	}
}

func writeLockText(w io.Writer, l *cargotoml.Lockfile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "version\t%d\n", l.Version)
	for _, p := range l.Packages {
		source := "path"
		switch {
		case p.IsRegistry():
			source = "crates.io"
		case p.Source != nil:
			source = *p.Source
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d deps\n", p.Name, p.Version, source, len(p.Dependencies))
	}
	return tw.Flush()
}
