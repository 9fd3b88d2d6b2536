package cargotoml

// Dependency is one entry of a dependency table. Exactly one of the variant
// fields is set after decoding.
//
// Variants are tried in field order. A bare version string is matched
// first. The closed WorkspaceDependency shape must come before the
// permissive Detailed shape, because every field of DependencyDetail is
// optional and it would otherwise accept `{ workspace = true }` as well.
type Dependency struct {
	_ Untagged
	// Version is the shorthand form `serde = "1.0"`.
	Version *Spanned[string]
	// Workspace is the inherited form `serde = { workspace = true }`.
	Workspace *WorkspaceDependency
	// Detailed is the table form with a version, path, git source and so
	// on.
	Detailed *DependencyDetail
}

// IsWorkspace reports whether the dependency is inherited from the
// workspace.
func (d Dependency) IsWorkspace() bool { return d.Workspace != nil }

// VersionReq returns the version requirement written for the dependency, if
// any. Inherited dependencies carry no requirement of their own.
func (d Dependency) VersionReq() (req string, ok bool) {
	switch {
	case d.Version != nil:
		return d.Version.Value, true
	case d.Detailed != nil && d.Detailed.Version != nil:
		return d.Detailed.Version.Value, true
	}
	return "", false
}

// Features returns the features the dependency enables explicitly.
func (d Dependency) Features() []string {
	switch {
	case d.Workspace != nil && d.Workspace.Features != nil:
		return d.Workspace.Features.Value
	case d.Detailed != nil && d.Detailed.Features != nil:
		return d.Detailed.Features.Value
	}
	return nil
}

// IsOptional reports whether the dependency is declared optional.
func (d Dependency) IsOptional() bool {
	switch {
	case d.Workspace != nil && d.Workspace.Optional != nil:
		return d.Workspace.Optional.Value
	case d.Detailed != nil && d.Detailed.Optional != nil:
		return d.Detailed.Optional.Value
	}
	return false
}

// DependencyDetail is the table form of a dependency.
type DependencyDetail struct {
	Version *Spanned[string]
	// Path points to a local crate, relative to the manifest.
	Path *Spanned[string]
	// Git is a repository URL. Branch, Tag and Rev select the commit.
	Git    *Spanned[string]
	Branch *Spanned[string]
	Tag    *Spanned[string]
	Rev    *Spanned[string]
	// Registry names an alternative registry.
	Registry      *Spanned[string]
	RegistryIndex *Spanned[string]
	// Package is the real crate name when the dependency is renamed.
	Package         *Spanned[string]
	Features        *Spanned[[]string]
	DefaultFeatures *Spanned[bool]
	Optional        *Spanned[bool]
	Public          *Spanned[bool]
	Metadata        any
}

// WorkspaceDependency is a dependency inherited from `[workspace.dependencies]`.
// Only additive overrides are allowed next to the marker; any other key is
// rejected so that typos are reported instead of silently matching
// DependencyDetail.
type WorkspaceDependency struct {
	_               Closed
	Workspace       Spanned[bool]
	Features        *Spanned[[]string]
	Optional        *Spanned[bool]
	DefaultFeatures *Spanned[bool]
}

// TargetSpec holds the dependency tables of one `[target.<cfg>]` section.
type TargetSpec struct {
	Dependencies      map[string]Dependency
	DevDependencies   map[string]Dependency
	BuildDependencies map[string]Dependency
}
