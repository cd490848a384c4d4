// Package securitytable provides utilities for rendering scan findings in a
// table format.
package securitytable

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/audit"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
	"github.com/sentinelsec/sg-sentinel/service/rules"
)

// DrawSecurityTable renders the scan report in a formatted table.
func DrawSecurityTable(input model.RenderSecurityInput) {
	fmt.Println("\n🔒 Security Group Scan")
	fmt.Printf("   ")

	if input.Summary.High > 0 {
		fmt.Printf("%s ", text.FgHiRed.Sprintf("🔴 %d High", input.Summary.High))
	}

	if input.Summary.Medium > 0 {
		fmt.Printf("%s ", text.FgYellow.Sprintf("🟡 %d Medium", input.Summary.Medium))
	}

	if input.Summary.Low > 0 {
		fmt.Printf("%s ", text.FgCyan.Sprintf("🔵 %d Low", input.Summary.Low))
	}

	if input.Summary.Total == 0 {
		fmt.Printf("%s ", text.FgGreen.Sprint("🟢 No findings"))
	}

	fmt.Println()

	if len(input.Findings) > 0 {
		drawFindingsTable(input.AccountID, input.Region, input.Findings)
	}

	if len(input.Exposures) > 0 {
		drawExposureTable(input.AccountID, input.Region, input.Exposures)
	}

	drawStats(input.Stats)

	if len(input.Recommendations) > 0 {
		fmt.Println("\n💡 Recommendations")
		for _, rec := range input.Recommendations {
			fmt.Printf("   • %s\n", rec)
		}
	}
}

func drawFindingsTable(accountID, region string, findings []audit.Finding) {
	fmt.Println("\n" + text.FgRed.Sprint("🚨 Security Group Findings"))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Account", "Region", "Severity", "Security Group", "Rule", "Port", "Source", "Recommendation"})

	for _, f := range findings {
		sgDisplay := fmt.Sprintf("%s\n%s", f.GroupName, f.GroupID)

		portDisplay := "-"
		sourceDisplay := "-"
		if f.AffectedRule != nil {
			portDisplay = f.AffectedRule.Port.String()
			sourceDisplay = f.AffectedRule.Source
		}

		t.AppendRow(table.Row{
			accountID,
			region,
			formatSeverity(f.Severity),
			sgDisplay,
			f.RuleID,
			portDisplay,
			sourceDisplay,
			truncate(f.Recommendation, 40),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func drawExposureTable(accountID, region string, exposures []exposure.InstanceExposure) {
	fmt.Println("\n" + text.FgRed.Sprint("🌐 Instance Exposure"))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Account", "Region", "Risk", "Instance", "Public IP", "Exposed Ports", "Recommendation"})

	for _, e := range exposures {
		instanceDisplay := e.InstanceID
		if e.InstanceName != "" {
			instanceDisplay = fmt.Sprintf("%s\n%s", e.InstanceName, e.InstanceID)
		}

		recommendation := ""
		if len(e.Recommendations) > 0 {
			recommendation = e.Recommendations[0]
		}

		t.AppendRow(table.Row{
			accountID,
			region,
			formatSeverity(e.RiskLevel),
			instanceDisplay,
			e.PublicIP,
			formatPorts(e.ExposedPorts),
			truncate(recommendation, 40),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func drawStats(stats model.ScanStats) {
	fmt.Println("\n📊 Scan Statistics")
	fmt.Printf("   Security groups: %d | Instances: %d | Public instances: %d | Exposure rate: %s | Avg exposed ports: %.1f\n",
		stats.TotalGroups,
		stats.TotalInstances,
		stats.PublicInstances,
		stats.ExposureRate,
		stats.AvgExposedPorts,
	)
}

func formatSeverity(severity string) string {
	switch severity {
	case rules.SeverityHigh:
		return text.FgHiRed.Sprint(severity)
	case rules.SeverityMedium:
		return text.FgYellow.Sprint(severity)
	case rules.SeverityLow:
		return text.FgCyan.Sprint(severity)
	}

	return severity
}

// formatPorts compresses long port lists so wide ranges stay readable.
func formatPorts(ports []int32) string {
	const maxShown = 8

	var parts []string
	for i, p := range ports {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("… +%d more", len(ports)-maxShown))
			break
		}
		parts = append(parts, fmt.Sprintf("%d", p))
	}

	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-3] + "..."
}
