package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-cargotoml"
)

func newManifestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest [path]",
		Short: "Decode a Cargo.toml",
		Long:  `Decode a Cargo.toml (default: ./Cargo.toml) and print the typed manifest.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args, "Cargo.toml")
			a.log.Debug("reading manifest", "path", path)

			m, err := cargotoml.ReadManifest(path, a.decodeOptions()...)
			if err != nil {
				return err
			}
			a.log.Debug("manifest decoded", "path", path, "dependencies", len(m.AllDependencies()))
			return render(a.out, a.settings.Format, m, func(w io.Writer) error {
				return writeManifestText(w, m)
			})
		},
	}
}

func writeManifestText(w io.Writer, m *cargotoml.Manifest) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if p := m.Package; p != nil {
		if p.Name != nil {
			fmt.Fprintf(tw, "package\t%s\n", p.Name.Value)
		}
		fmt.Fprintf(tw, "version\t%s\n", stringOrInherited(p.Version))
		if p.Edition != nil {
			if e, ok := p.Edition.Get(); ok {
				fmt.Fprintf(tw, "edition\t%s\n", e)
			} else {
				fmt.Fprintf(tw, "edition\t(workspace)\n")
			}
		}
	}
	if ws := m.Workspace; ws != nil {
		members := 0
		if ws.Members != nil {
			members = len(ws.Members.Value)
		}
		fmt.Fprintf(tw, "workspace\t%d member patterns, %d shared dependencies\n", members, len(ws.Dependencies))
	}

	for _, d := range m.AllDependencies() {
		kind := string(d.Kind)
		if d.Target != "" {
			kind = d.Target + " " + kind
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", kind, d.Name, requirement(d.Dependency))
	}

	profiles := make([]string, 0, len(m.Profile))
	for name := range m.Profile {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	for _, name := range profiles {
		fmt.Fprintf(tw, "profile\t%s\n", name)
	}
	return tw.Flush()
}

func stringOrInherited(v *cargotoml.StringOrWorkspace) string {
	if v == nil {
		return "-"
	}
	if s, ok := v.Get(); ok {
		return s
	}
	return "(workspace)"
}

func requirement(d cargotoml.Dependency) string {
	if d.IsWorkspace() {
		return "(workspace)"
	}
	if req, ok := d.VersionReq(); ok {
		return req
	}
	if d.Detailed != nil {
		switch {
		case d.Detailed.Path != nil:
			return "path " + d.Detailed.Path.Value
		case d.Detailed.Git != nil:
			return "git " + d.Detailed.Git.Value
		}
	}
	return "*"
}
