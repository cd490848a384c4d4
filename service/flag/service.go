// Package flag parses the command line flags.
package flag

import (
	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/spf13/pflag"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{}
}

// GetParsedFlags parses and returns the command-line flags.
func (s *service) GetParsedFlags() (model.Flags, error) {
	profile := pflag.StringP("profile", "p", "", "AWS profile to use")
	region := pflag.StringP("region", "r", "", "AWS region to scan")
	output := pflag.StringP("output", "o", "table", "Output format (table or json)")
	outputFile := pflag.StringP("output-file", "f", "", "Write the JSON report to a file instead of stdout")
	rulesPath := pflag.String("rules-path", "", "Path to an alternative rule catalog (default rules/catalog.json)")
	version := pflag.BoolP("version", "v", false, "Show version information")

	pflag.Parse()

	return model.Flags{
		Profile:    *profile,
		Region:     *region,
		Output:     *output,
		OutputFile: *outputFile,
		RulesPath:  *rulesPath,
		Version:    *version,
	}, nil
}
