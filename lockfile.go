package cargotoml

import "slices"

// CratesIOSource is the source string of crates.io packages in Cargo.lock.
const CratesIOSource = "registry+https://github.com/rust-lang/crates.io-index"

// defaultLockVersion is assumed when a lockfile has no version key.
const defaultLockVersion = 3

// Lockfile is a decoded Cargo.lock.
type Lockfile struct {
	// Version is the lockfile format version.
	Version  uint32
	Packages []LockPackage
}

// IsSupported reports whether the lockfile uses format version 3 or 4.
func (l *Lockfile) IsSupported() bool {
	return l.Version == 3 || l.Version == 4
}

// FindByName returns the first package with the given name.
func (l *Lockfile) FindByName(name string) (*LockPackage, bool) {
	i := slices.IndexFunc(l.Packages, func(p LockPackage) bool { return p.Name == name })
	if i < 0 {
		return nil, false
	}
	return &l.Packages[i], true
}

// FindByNameVersion returns the package with the given name and version.
func (l *Lockfile) FindByNameVersion(name, version string) (*LockPackage, bool) {
	i := slices.IndexFunc(l.Packages, func(p LockPackage) bool {
		return p.Name == name && p.Version == version
	})
	if i < 0 {
		return nil, false
	}
	return &l.Packages[i], true
}

// LockPackage is one `[[package]]` entry of a lockfile.
type LockPackage struct {
	Name    string
	Version string
	// Source is nil for path dependencies.
	Source *string
	// Checksum is the SHA256 of registry packages.
	Checksum *string
	// Dependencies are written as "name", "name version" or
	// "name version (source)". Never nil.
	Dependencies []string
}

// IsRegistry reports whether the package comes from crates.io.
func (p *LockPackage) IsRegistry() bool {
	return p.Source != nil && *p.Source == CratesIOSource
}

// IsPath reports whether the package is a path dependency.
func (p *LockPackage) IsPath() bool {
	return p.Source == nil
}

type rawLockfile struct {
	Version *uint32
	Package []rawLockPackage
}

type rawLockPackage struct {
	Name         string
	Version      string
	Source       *string
	Checksum     *string
	Dependencies []string
}

func (r *rawLockfile) lockfile() *Lockfile {
	l := &Lockfile{
		Version:  defaultLockVersion,
		Packages: make([]LockPackage, 0, len(r.Package)),
	}
	if r.Version != nil {
		l.Version = *r.Version
	}
	for _, p := range r.Package {
		deps := p.Dependencies
		if deps == nil {
			deps = []string{}
		}
		l.Packages = append(l.Packages, LockPackage{
			Name:         p.Name,
			Version:      p.Version,
			Source:       p.Source,
			Checksum:     p.Checksum,
			Dependencies: deps,
		})
	}
	return l
}
