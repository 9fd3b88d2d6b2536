package cargotoml

// Lints is the `[lints]` section, or `[workspace.lints]`.
type Lints struct {
	// Workspace is set by `[lints] workspace = true` in member crates.
	Workspace *Spanned[bool]
	Rust      map[string]LintLevel
	Clippy    map[string]LintLevel
	Rustdoc   map[string]LintLevel
}

// LintLevel is either a bare level (`unsafe_code = "forbid"`) or a table
// with a level and a priority.
type LintLevel struct {
	_      Untagged
	Config *LintConfig
	Level  *Spanned[LintLevelName]
}

// Name returns the level regardless of the form it was written in.
func (l LintLevel) Name() LintLevelName {
	switch {
	case l.Config != nil:
		return l.Config.Level.Value
	case l.Level != nil:
		return l.Level.Value
	}
	return ""
}

// LintConfig is the table form of a lint level.
type LintConfig struct {
	Level    Spanned[LintLevelName]
	Priority *Spanned[int32]
	CheckCfg *Spanned[[]string]
}

// LintLevelName is a lint severity.
type LintLevelName string

const (
	LintForbid LintLevelName = "forbid"
	LintDeny   LintLevelName = "deny"
	LintWarn   LintLevelName = "warn"
	LintAllow  LintLevelName = "allow"
)

// Variants lists the accepted lint levels.
func (LintLevelName) Variants() []string {
	return []string{string(LintForbid), string(LintDeny), string(LintWarn), string(LintAllow)}
}
