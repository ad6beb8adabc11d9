package model

// Counts summarises the registries of one SourceCoverage.
type Counts struct {
	Statements int
	Functions  int
	Branches   int
	Paths      int
}

// Add returns the element-wise sum of two Counts.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Statements: c.Statements + o.Statements,
		Functions:  c.Functions + o.Functions,
		Branches:   c.Branches + o.Branches,
		Paths:      c.Paths + o.Paths,
	}
}

// FileResult holds the instrumentation outcome for a single source file.
type FileResult struct {
	Source   Source
	Output   Path   // where the instrumented code was written; empty on dry runs
	Counts   Counts // counters registered for the file
	Skipped  bool   // file carried an ignore-file directive or was already instrumented
	Reason   string // why the file was skipped
	Coverage *SourceCoverage
	Error    error // instrumentation error for this file
}
