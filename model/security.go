package model

import (
	"github.com/sentinelsec/sg-sentinel/service/audit"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
)

// SecurityReportJSON represents the JSON output of a scan.
type SecurityReportJSON struct {
	AccountID         string                 `json:"account_id"`
	Region            string                 `json:"region"`
	GeneratedAt       string                 `json:"generated_at"`
	HasFindings       bool                   `json:"has_findings"`
	Summary           SecuritySummaryJSON    `json:"summary"`
	Findings          []FindingJSON          `json:"findings"`
	InstanceExposures []InstanceExposureJSON `json:"instance_exposures"`
	Recommendations   []string               `json:"recommendations"`
	Stats             ScanStatsJSON          `json:"stats"`
}

// SecuritySummaryJSON provides finding counts by severity.
type SecuritySummaryJSON struct {
	TotalFindings int `json:"total_findings"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
}

// FindingJSON represents one security finding.
type FindingJSON struct {
	GroupID        string            `json:"group_id"`
	GroupName      string            `json:"group_name"`
	RuleID         string            `json:"rule_id"`
	Severity       string            `json:"severity"`
	Description    string            `json:"description"`
	Recommendation string            `json:"recommendation"`
	AffectedRule   *AffectedRuleJSON `json:"affected_rule,omitempty"`
}

// AffectedRuleJSON describes the permission slice a finding matched. Port is
// a number for single ports and a string for ranges and "all".
type AffectedRuleJSON struct {
	Port     audit.PortSpec `json:"port"`
	Protocol string         `json:"protocol"`
	Source   string         `json:"source"`
}

// InstanceExposureJSON represents one instance's public exposure.
type InstanceExposureJSON struct {
	InstanceID       string   `json:"instance_id"`
	InstanceName     string   `json:"instance_name,omitempty"`
	PublicIP         string   `json:"public_ip"`
	SecurityGroupIDs []string `json:"security_group_ids"`
	ExposedPorts     []int32  `json:"exposed_ports"`
	RiskLevel        string   `json:"risk_level"`
	Recommendations  []string `json:"recommendations"`
}

// ScanStatsJSON carries aggregate scan statistics.
type ScanStatsJSON struct {
	TotalGroups     int     `json:"total_groups"`
	TotalInstances  int     `json:"total_instances"`
	PublicInstances int     `json:"public_instances"`
	ExposureRate    string  `json:"exposure_rate"`
	AvgExposedPorts float64 `json:"avg_exposed_ports_per_public_instance"`
}

// ScanStats carries aggregate scan statistics for rendering.
type ScanStats struct {
	TotalGroups     int
	TotalInstances  int
	PublicInstances int
	ExposureRate    string
	AvgExposedPorts float64
}

// RenderSecurityInput represents the input data for rendering the scan report.
type RenderSecurityInput struct {
	AccountID       string
	Region          string
	Summary         audit.Summary
	Findings        []audit.Finding
	Exposures       []exposure.InstanceExposure
	Recommendations []string
	Stats           ScanStats
}
