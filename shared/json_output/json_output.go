// Package jsonoutput builds and prints the JSON scan report.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/audit"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
)

// OutputSecurityJSON outputs the scan report as JSON.
func OutputSecurityJSON(input model.RenderSecurityInput) error {
	report := BuildSecurityReport(input, time.Now().UTC().Format(time.RFC3339))

	return printJSON(report)
}

// WriteSecurityJSON writes the scan report as JSON to the given path.
func WriteSecurityJSON(input model.RenderSecurityInput, path string) error {
	report := BuildSecurityReport(input, time.Now().UTC().Format(time.RFC3339))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal security report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write security report to %s: %w", path, err)
	}

	return nil
}

// BuildSecurityReport builds the JSON report model.
func BuildSecurityReport(input model.RenderSecurityInput, generatedAt string) model.SecurityReportJSON {
	return model.SecurityReportJSON{
		AccountID:   input.AccountID,
		Region:      input.Region,
		GeneratedAt: generatedAt,
		HasFindings: input.Summary.Total > 0,
		Summary: model.SecuritySummaryJSON{
			TotalFindings: input.Summary.Total,
			High:          input.Summary.High,
			Medium:        input.Summary.Medium,
			Low:           input.Summary.Low,
		},
		Findings:          mapFindings(input.Findings),
		InstanceExposures: mapExposures(input.Exposures),
		Recommendations:   input.Recommendations,
		Stats: model.ScanStatsJSON{
			TotalGroups:     input.Stats.TotalGroups,
			TotalInstances:  input.Stats.TotalInstances,
			PublicInstances: input.Stats.PublicInstances,
			ExposureRate:    input.Stats.ExposureRate,
			AvgExposedPorts: input.Stats.AvgExposedPorts,
		},
	}
}

func mapFindings(findings []audit.Finding) []model.FindingJSON {
	var result []model.FindingJSON

	for _, f := range findings {
		item := model.FindingJSON{
			GroupID:        f.GroupID,
			GroupName:      f.GroupName,
			RuleID:         f.RuleID,
			Severity:       f.Severity,
			Description:    f.Description,
			Recommendation: f.Recommendation,
		}

		if f.AffectedRule != nil {
			item.AffectedRule = &model.AffectedRuleJSON{
				Port:     f.AffectedRule.Port,
				Protocol: f.AffectedRule.Protocol,
				Source:   f.AffectedRule.Source,
			}
		}

		result = append(result, item)
	}

	return result
}

func mapExposures(exposures []exposure.InstanceExposure) []model.InstanceExposureJSON {
	var result []model.InstanceExposureJSON

	for _, e := range exposures {
		result = append(result, model.InstanceExposureJSON{
			InstanceID:       e.InstanceID,
			InstanceName:     e.InstanceName,
			PublicIP:         e.PublicIP,
			SecurityGroupIDs: e.GroupIDs,
			ExposedPorts:     e.ExposedPorts,
			RiskLevel:        e.RiskLevel,
			Recommendations:  e.Recommendations,
		})
	}

	return result
}

func printJSON(report model.SecurityReportJSON) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal security report: %w", err)
	}

	fmt.Println(string(data))

	return nil
}
