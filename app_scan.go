package main

import (
	"context"
	"fmt"

	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/audit"
	"github.com/sentinelsec/sg-sentinel/service/awsconfig"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/orchestrator"
	"github.com/sentinelsec/sg-sentinel/service/output"
	"github.com/sentinelsec/sg-sentinel/service/rules"
	awssts "github.com/sentinelsec/sg-sentinel/service/sts"
	"github.com/sentinelsec/sg-sentinel/shared/spinner"
)

func runRegionScan(flags model.Flags, versionInfo model.VersionInfo) error {
	cfgService := awsconfig.NewService()

	awsCfg, err := cfgService.GetAWSCfg(context.Background(), flags.Region, flags.Profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config for region %s: %w", flags.Region, err)
	}

	if flags.Region == "" {
		flags.Region = awsCfg.Region
	}

	if flags.Output != "json" {
		spinner.StartSpinner()
		defer spinner.StopSpinner()
	}

	orchestratorService := orchestrator.NewService(
		awssts.NewService(awsCfg),
		inventory.NewService(awsCfg),
		rules.NewService(""),
		audit.NewService(),
		exposure.NewService(),
		output.NewService(flags.Output, flags.OutputFile),
		versionInfo,
	)

	if err := orchestratorService.Orchestrate(flags); err != nil {
		return fmt.Errorf("security scan failed for region %s: %w", flags.Region, err)
	}

	return nil
}
