package model

// Config is the content of a .jscov.yaml file. Zero values mean "not set"
// so command-line flags can be layered on top.
type Config struct {
	Include          []string `yaml:"include"`
	Exclude          []string `yaml:"exclude"`
	Output           string   `yaml:"output"`
	InPlace          bool     `yaml:"in_place"`
	CoverageVariable string   `yaml:"coverage_variable" validate:"omitempty,jsident"`
	ReportLogic      bool     `yaml:"report_logic"`
	Preamble         *bool    `yaml:"preamble"`
	Parallel         int      `yaml:"parallel" validate:"omitempty,min=1,max=256"`
	Salt             string   `yaml:"salt" validate:"omitempty,max=128"`
}
