package model

// Target describes where and how a source is instrumented.
type Target struct {
	// Output is the directory instrumented files are written under, keyed by
	// Source.Rel. Ignored when InPlace or DryRun is set.
	Output  Path
	InPlace bool
	// DryRun instruments in memory only.
	DryRun bool

	CoverageVariable string
	ReportLogic      bool
	NoPreamble       bool
	Salt             string
}
