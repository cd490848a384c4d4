// Package main is the entry point for the sg-sentinel application.
package main

import (
	"fmt"
	"os"

	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/flag"
	"github.com/sentinelsec/sg-sentinel/shared/banner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flagService := flag.NewService()

	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		fmt.Printf("sg-sentinel version %s\n", versionInfo.Version)
		fmt.Printf("commit: %s\n", versionInfo.Commit)
		fmt.Printf("built at: %s\n", versionInfo.Date)

		return nil
	}

	if flags.Output != "json" {
		banner.DrawBannerTitle()
	}

	return runRegionScan(flags, versionInfo)
}
