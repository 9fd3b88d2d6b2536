package cargotoml

import "sort"

// Manifest is a decoded Cargo.toml.
//
// Every section is optional. A section that is present but empty decodes to
// a non-nil empty value, so callers can tell `[features]` apart from a
// manifest without that table.
type Manifest struct {
	// CargoFeatures lists unstable cargo features enabled by the manifest.
	CargoFeatures *Spanned[[]string]

	// Package is the `[package]` section containing crate metadata.
	Package *Package
	// Workspace is the `[workspace]` section for multi-crate workspaces.
	Workspace *Workspace

	// Dependencies holds `[dependencies]`.
	Dependencies map[string]Dependency
	// DevDependencies holds `[dev-dependencies]`.
	DevDependencies map[string]Dependency
	// BuildDependencies holds `[build-dependencies]`.
	BuildDependencies map[string]Dependency
	// Target holds platform-specific dependency tables from
	// `[target.'cfg(...)'.dependencies]`, keyed by target expression.
	Target map[string]TargetSpec

	Lib     *LibTarget
	Bin     []BinTarget
	Test    []TestTarget
	Bench   []BenchTarget
	Example []ExampleTarget

	// Features maps feature names to the features and dependencies they
	// enable.
	Features map[string][]string
	// Patch maps a source (a registry name or URL) to overriding
	// dependencies.
	Patch map[string]map[string]Dependency
	// Replace holds the deprecated `[replace]` table.
	Replace map[string]Dependency
	// Profile maps profile names to compiler settings.
	Profile map[string]Profile
	Lints   *Lints
	// Badges holds the deprecated `[badges]` table.
	Badges map[string]Badge
}

// IsWorkspaceRoot reports whether the manifest declares a `[workspace]`.
func (m *Manifest) IsWorkspaceRoot() bool {
	return m.Workspace != nil
}

// DependencyKind names one of the dependency tables of a manifest.
type DependencyKind string

const (
	NormalDependency DependencyKind = "dependencies"
	DevDependency    DependencyKind = "dev-dependencies"
	BuildDependency  DependencyKind = "build-dependencies"
)

// NamedDependency is a dependency together with the key it was declared
// under.
type NamedDependency struct {
	Name   string
	Kind   DependencyKind
	Target string // empty for platform-independent dependencies
	Dependency
}

// AllDependencies returns every dependency declared by the manifest,
// including platform-specific ones. The result is sorted by target, kind
// and name.
func (m *Manifest) AllDependencies() []NamedDependency {
	var out []NamedDependency
	add := func(target string, kind DependencyKind, deps map[string]Dependency) {
		for name, dep := range deps {
			out = append(out, NamedDependency{Name: name, Kind: kind, Target: target, Dependency: dep})
		}
	}
	add("", NormalDependency, m.Dependencies)
	add("", DevDependency, m.DevDependencies)
	add("", BuildDependency, m.BuildDependencies)
	for target, spec := range m.Target {
		add(target, NormalDependency, spec.Dependencies)
		add(target, DevDependency, spec.DevDependencies)
		add(target, BuildDependency, spec.BuildDependencies)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
	return out
}

// Package is the `[package]` section of a manifest.
type Package struct {
	// Name is the package identifier used in dependencies and as the
	// default name for targets.
	Name *Spanned[string]
	// Version follows SemVer, e.g. `1.0.0`.
	Version *StringOrWorkspace
	// Authors is deprecated but still widely present.
	Authors *VecOrWorkspace
	// Edition is the Rust edition used for compilation.
	Edition *EditionOrWorkspace
	// RustVersion is the minimum supported toolchain version.
	RustVersion   *StringOrWorkspace
	Description   *StringOrWorkspace
	Documentation *StringOrWorkspace
	// Readme is a path relative to the manifest, or false to disable.
	Readme     *StringOrBoolOrWorkspace
	Homepage   *StringOrWorkspace
	Repository *StringOrWorkspace
	// License is an SPDX 2.3 license expression.
	License     *StringOrWorkspace
	LicenseFile *StringOrWorkspace
	Keywords    *VecOrWorkspace
	Categories  *VecOrWorkspace
	// Workspace is the path to the workspace root.
	Workspace *StringOrWorkspace
	// Build is the build script path, or false to disable auto-detection.
	Build *StringOrBool
	// Links names the native library linked by the build script.
	Links   *Spanned[string]
	Exclude *Spanned[[]string]
	Include *Spanned[[]string]
	// Publish is false or a list of registries the package may be
	// published to.
	Publish *BoolOrVec
	// Metadata is free-form configuration for external tools.
	Metadata     any
	DefaultRun   *Spanned[string]
	Autolib      *Spanned[bool]
	Autobins     *Spanned[bool]
	Autoexamples *Spanned[bool]
	Autotests    *Spanned[bool]
	Autobenches  *Spanned[bool]
	Resolver     *Spanned[Resolver]
}

// Workspace is the `[workspace]` section of a manifest.
type Workspace struct {
	Members        *Spanned[[]string]
	Exclude        *Spanned[[]string]
	DefaultMembers *Spanned[[]string]
	Resolver       *Spanned[Resolver]
	Metadata       any
	// Dependencies are shared dependencies members may inherit.
	Dependencies map[string]Dependency
	// Package holds metadata members may inherit.
	Package *WorkspacePackage
	Lints   *Lints
}

// WorkspacePackage is `[workspace.package]`: package metadata that members
// inherit with `key.workspace = true`.
type WorkspacePackage struct {
	Version       *Spanned[string]
	Authors       *Spanned[[]string]
	Edition       *Spanned[Edition]
	RustVersion   *Spanned[string]
	Description   *Spanned[string]
	Documentation *Spanned[string]
	Readme        *StringOrBool
	Homepage      *Spanned[string]
	Repository    *Spanned[string]
	License       *Spanned[string]
	LicenseFile   *Spanned[string]
	Keywords      *Spanned[[]string]
	Categories    *Spanned[[]string]
	Publish       *BoolOrVec
	Exclude       *Spanned[[]string]
	Include       *Spanned[[]string]
}

// WorkspaceRef is the inheritance marker `{ workspace = true }`.
type WorkspaceRef struct {
	Workspace Spanned[bool]
}

// StringOrWorkspace is a string or an inherited value.
type StringOrWorkspace struct {
	_         Untagged
	Workspace *WorkspaceRef
	String    *Spanned[string]
}

// Get returns the direct value. ok is false when the value is inherited.
func (v StringOrWorkspace) Get() (s string, ok bool) {
	if v.String == nil {
		return "", false
	}
	return v.String.Value, true
}

// IsWorkspace reports whether the value is inherited from the workspace.
func (v StringOrWorkspace) IsWorkspace() bool { return v.Workspace != nil }

// VecOrWorkspace is a list of strings or an inherited value.
type VecOrWorkspace struct {
	_         Untagged
	Workspace *WorkspaceRef
	Values    *Spanned[[]string]
}

// Get returns the direct value. ok is false when the value is inherited.
func (v VecOrWorkspace) Get() (values []string, ok bool) {
	if v.Values == nil {
		return nil, false
	}
	return v.Values.Value, true
}

// IsWorkspace reports whether the value is inherited from the workspace.
func (v VecOrWorkspace) IsWorkspace() bool { return v.Workspace != nil }

// EditionOrWorkspace is an edition or an inherited value.
type EditionOrWorkspace struct {
	_         Untagged
	Edition   *Spanned[Edition]
	Workspace *WorkspaceRef
}

// Get returns the direct value. ok is false when the value is inherited.
func (v EditionOrWorkspace) Get() (e Edition, ok bool) {
	if v.Edition == nil {
		return "", false
	}
	return v.Edition.Value, true
}

// IsWorkspace reports whether the value is inherited from the workspace.
func (v EditionOrWorkspace) IsWorkspace() bool { return v.Workspace != nil }

// StringOrBoolOrWorkspace is a string, a boolean or an inherited value.
type StringOrBoolOrWorkspace struct {
	_         Untagged
	Workspace *WorkspaceRef
	Bool      *Spanned[bool]
	String    *Spanned[string]
}

// IsWorkspace reports whether the value is inherited from the workspace.
func (v StringOrBoolOrWorkspace) IsWorkspace() bool { return v.Workspace != nil }

// StringOrBool is a string, typically a path, or a boolean.
type StringOrBool struct {
	_      Untagged
	String *Spanned[string]
	Bool   *Spanned[bool]
}

// BoolOrVec is a boolean or a list of strings.
type BoolOrVec struct {
	_    Untagged
	Bool *Spanned[bool]
	Vec  *Spanned[[]string]
}

// Edition is a Rust edition year.
type Edition string

const (
	E2015 Edition = "2015"
	E2018 Edition = "2018"
	E2021 Edition = "2021"
	E2024 Edition = "2024"
)

// Variants lists the accepted editions.
func (Edition) Variants() []string {
	return []string{string(E2015), string(E2018), string(E2021), string(E2024)}
}

// Resolver is a dependency resolver version.
type Resolver string

const (
	ResolverV1 Resolver = "1"
	ResolverV2 Resolver = "2"
	ResolverV3 Resolver = "3"
)

// Variants lists the accepted resolver versions.
func (Resolver) Variants() []string {
	return []string{string(ResolverV1), string(ResolverV2), string(ResolverV3)}
}

// Badge holds the attributes of one deprecated badge entry.
type Badge map[string]any
