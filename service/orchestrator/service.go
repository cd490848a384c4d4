// Package orchestrator coordinates the scan workflow: identity, inventory
// fetches, rule evaluation, exposure aggregation, and rendering. Fetches and
// evaluation run sequentially so output ordering always tracks input
// ordering.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/recommend"
	"github.com/sentinelsec/sg-sentinel/service/rules"
)

func (s *service) Orchestrate(flags model.Flags) error {
	if flags.Version {
		return s.versionWorkflow()
	}

	return s.scanWorkflow(flags)
}

func (s *service) versionWorkflow() error {
	s.outputService.StopSpinner()

	fmt.Printf("sg-sentinel version %s\n", s.versionInfo.Version)
	fmt.Printf("commit: %s\n", s.versionInfo.Commit)
	fmt.Printf("built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) scanWorkflow(flags model.Flags) error {
	ctx := context.Background()

	identity, err := s.stsService.GetCallerIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	accountID := aws.ToString(identity.Account)

	// An explicit catalog path bypasses the repository memo; the default
	// path is loaded once and cached for the life of the repository.
	var catalog []rules.SecurityRule
	if flags.RulesPath != "" {
		catalog = s.rulesService.LoadFrom(flags.RulesPath)
	} else {
		catalog = s.rulesService.Load()
	}

	groups, err := s.inventoryService.GetSecurityGroups(ctx)
	if err != nil {
		return fmt.Errorf("security group analysis failed: %w", err)
	}

	activeGroupIDs, err := s.inventoryService.GetActiveGroupIDs(ctx)
	if err != nil {
		return fmt.Errorf("security group analysis failed: %w", err)
	}

	instances, err := s.inventoryService.GetInstances(ctx)
	if err != nil {
		return fmt.Errorf("instance exposure analysis failed: %w", err)
	}

	analysis := s.auditService.Analyze(groups, activeGroupIDs, catalog)

	groupsByID := make(map[string]inventory.SecurityGroupRecord, len(groups))
	for _, group := range groups {
		groupsByID[group.ID] = group
	}

	var exposures []exposure.InstanceExposure

	for _, instance := range instances {
		if !instance.Running || instance.PublicIP == "" {
			continue
		}

		var attached []inventory.SecurityGroupRecord
		for _, groupID := range instance.GroupIDs {
			if group, ok := groupsByID[groupID]; ok {
				attached = append(attached, group)
			}
		}

		exposures = append(exposures, s.exposureService.Aggregate(instance, attached))
	}

	s.outputService.StopSpinner()

	return s.outputService.RenderSecurity(model.RenderSecurityInput{
		AccountID:       accountID,
		Region:          flags.Region,
		Summary:         analysis.Summary,
		Findings:        analysis.Findings,
		Exposures:       exposures,
		Recommendations: recommend.ForFindings(analysis.Summary),
		Stats:           buildStats(len(groups), len(instances), exposures),
	})
}

// buildStats derives the aggregate scan statistics: the exposure rate is the
// share of instances carrying a public IP, and the average counts exposed
// ports per public instance only.
func buildStats(totalGroups, totalInstances int, exposures []exposure.InstanceExposure) model.ScanStats {
	stats := model.ScanStats{
		TotalGroups:     totalGroups,
		TotalInstances:  totalInstances,
		PublicInstances: len(exposures),
		ExposureRate:    "0.0%",
	}

	if totalInstances > 0 {
		rate := float64(len(exposures)) / float64(totalInstances) * 100
		stats.ExposureRate = fmt.Sprintf("%.1f%%", rate)
	}

	if len(exposures) > 0 {
		total := 0
		for _, e := range exposures {
			total += len(e.ExposedPorts)
		}
		stats.AvgExposedPorts = float64(total) / float64(len(exposures))
	}

	return stats
}
