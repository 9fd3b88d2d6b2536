package cargotoml

// TargetCommon holds the settings shared by every build target.
type TargetCommon struct {
	Name             *Spanned[string]
	Path             *Spanned[string]
	Test             *Spanned[bool]
	Doctest          *Spanned[bool]
	Bench            *Spanned[bool]
	Doc              *Spanned[bool]
	Plugin           *Spanned[bool]
	Harness          *Spanned[bool]
	Edition          *Spanned[Edition]
	RequiredFeatures *Spanned[[]string]
}

// LibTarget is the `[lib]` section.
type LibTarget struct {
	TargetCommon
	ProcMacro         *Spanned[bool]
	CrateType         *Spanned[[]string]
	DocScrapeExamples *Spanned[bool]
}

// BinTarget is one `[[bin]]` entry.
type BinTarget struct {
	TargetCommon
}

// TestTarget is one `[[test]]` entry.
type TestTarget struct {
	TargetCommon
}

// BenchTarget is one `[[bench]]` entry.
type BenchTarget struct {
	TargetCommon
}

// ExampleTarget is one `[[example]]` entry.
type ExampleTarget struct {
	TargetCommon
	CrateType *Spanned[[]string]
}
