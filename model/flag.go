package model

// Flags represents the parsed command line flags.
type Flags struct {
	Profile    string
	Region     string
	Output     string
	OutputFile string
	RulesPath  string
	Version    bool
}
