package cargotoml

// Profile holds compiler settings for one `[profile.<name>]` section.
type Profile struct {
	OptLevel        *OptLevel
	Debug           *DebugLevel
	DebugAssertions *Spanned[bool]
	OverflowChecks  *Spanned[bool]
	Lto             *Lto
	Panic           *Spanned[PanicStrategy]
	Incremental     *Spanned[bool]
	CodegenUnits    *Spanned[uint32]
	Rpath           *Spanned[bool]
	Strip           *StripLevel
	SplitDebuginfo  *Spanned[string]
	// Inherits names the profile this one extends.
	Inherits *Spanned[string]
	// Package holds per-package overrides, keyed by package name or "*".
	Package       map[string]PackageProfile
	BuildOverride *BuildOverride
}

// PackageProfile is a per-package override inside a profile.
type PackageProfile struct {
	OptLevel        *OptLevel
	Debug           *DebugLevel
	DebugAssertions *Spanned[bool]
	OverflowChecks  *Spanned[bool]
	CodegenUnits    *Spanned[uint32]
}

// BuildOverride applies to build scripts and proc-macros.
type BuildOverride struct {
	OptLevel        *OptLevel
	Debug           *DebugLevel
	DebugAssertions *Spanned[bool]
	OverflowChecks  *Spanned[bool]
	CodegenUnits    *Spanned[uint32]
	Incremental     *Spanned[bool]
}

// OptLevel is an optimization level: 0 to 3, or "s" / "z".
type OptLevel struct {
	_      Untagged
	Number *Spanned[uint8]
	String *Spanned[string]
}

// DebugLevel is the amount of debug information: a boolean, 0 to 2, or a
// named level such as "line-tables-only".
type DebugLevel struct {
	_      Untagged
	Bool   *Spanned[bool]
	Number *Spanned[uint8]
	String *Spanned[string]
}

// Lto selects link-time optimization: a boolean or "thin" / "fat" / "off".
type Lto struct {
	_      Untagged
	Bool   *Spanned[bool]
	String *Spanned[string]
}

// StripLevel selects what to strip: a boolean or "none" / "debuginfo" /
// "symbols".
type StripLevel struct {
	_      Untagged
	Bool   *Spanned[bool]
	String *Spanned[string]
}

// PanicStrategy is the panic behavior of a profile.
type PanicStrategy string

const (
	PanicUnwind         PanicStrategy = "unwind"
	PanicAbort          PanicStrategy = "abort"
	PanicImmediateAbort PanicStrategy = "immediate-abort"
)

// Variants lists the accepted panic strategies.
func (PanicStrategy) Variants() []string {
	return []string{string(PanicUnwind), string(PanicAbort), string(PanicImmediateAbort)}
}
