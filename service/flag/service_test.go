package flag

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

func resetFlagState(t *testing.T, args []string) func() {
	t.Helper()

	oldCommandLine := pflag.CommandLine
	oldArgs := os.Args
	pflag.CommandLine = pflag.NewFlagSet("test", pflag.ContinueOnError)
	os.Args = append([]string{"sg-sentinel"}, args...)

	return func() {
		pflag.CommandLine = oldCommandLine
		os.Args = oldArgs
	}
}

func TestGetParsedFlagsDefaults(t *testing.T) {
	cleanup := resetFlagState(t, nil)
	defer cleanup()

	flags, err := NewService().GetParsedFlags()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flags.Profile != "" || flags.Region != "" {
		t.Fatalf("expected empty profile and region, got %+v", flags)
	}
	if flags.Output != "table" {
		t.Fatalf("expected table output by default, got %q", flags.Output)
	}
	if flags.OutputFile != "" {
		t.Fatalf("expected no output file by default, got %q", flags.OutputFile)
	}
	if flags.RulesPath != "" {
		t.Fatalf("expected empty rules path by default, got %q", flags.RulesPath)
	}
	if flags.Version {
		t.Fatalf("did not expect the version flag by default")
	}
}

func TestGetParsedFlagsAllOptions(t *testing.T) {
	cleanup := resetFlagState(t, []string{
		"--profile", "prod",
		"--region", "eu-west-1",
		"--output", "json",
		"--output-file", "report.json",
		"--rules-path", "/tmp/rules.json",
		"--version",
	})
	defer cleanup()

	flags, err := NewService().GetParsedFlags()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flags.Profile != "prod" || flags.Region != "eu-west-1" {
		t.Fatalf("unexpected profile/region %+v", flags)
	}
	if flags.Output != "json" || flags.OutputFile != "report.json" || flags.RulesPath != "/tmp/rules.json" {
		t.Fatalf("unexpected output options %+v", flags)
	}
	if !flags.Version {
		t.Fatalf("expected the version flag to be set")
	}
}

func TestGetParsedFlagsShorthands(t *testing.T) {
	cleanup := resetFlagState(t, []string{"-p", "dev", "-r", "us-west-2", "-o", "json", "-f", "report.json"})
	defer cleanup()

	flags, err := NewService().GetParsedFlags()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flags.Profile != "dev" || flags.Region != "us-west-2" || flags.Output != "json" {
		t.Fatalf("unexpected flags %+v", flags)
	}
	if flags.OutputFile != "report.json" {
		t.Fatalf("unexpected output file %q", flags.OutputFile)
	}
}
