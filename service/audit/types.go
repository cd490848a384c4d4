// Package audit evaluates security group permissions against the rule
// catalog and detects unused groups.
package audit

import (
	"encoding/json"
	"strconv"

	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/rules"
)

// PortSpec is the port a finding matched. It marshals as a number for single
// ports and as a string for ranges and "all".
type PortSpec struct {
	Number int32
	Label  string
}

// PortNumber builds a PortSpec for a single port.
func PortNumber(n int32) PortSpec {
	return PortSpec{Number: n}
}

// PortLabel builds a PortSpec for a range string or the "all" marker.
func PortLabel(label string) PortSpec {
	return PortSpec{Label: label}
}

func (p PortSpec) String() string {
	if p.Label != "" {
		return p.Label
	}

	return strconv.Itoa(int(p.Number))
}

// MarshalJSON emits a JSON number for single ports and a JSON string otherwise.
func (p PortSpec) MarshalJSON() ([]byte, error) {
	if p.Label != "" {
		return json.Marshal(p.Label)
	}

	return json.Marshal(p.Number)
}

// UnmarshalJSON accepts either wire form.
func (p *PortSpec) UnmarshalJSON(data []byte) error {
	var n int32
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PortNumber(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*p = PortLabel(s)

	return nil
}

// AffectedRule describes the slice of a permission that triggered a finding.
type AffectedRule struct {
	Port     PortSpec `json:"port"`
	Protocol string   `json:"protocol"`
	Source   string   `json:"source"`
}

// Finding is one security issue tied to a group.
type Finding struct {
	GroupID        string
	GroupName      string
	RuleID         string
	Severity       string
	Description    string
	Recommendation string
	AffectedRule   *AffectedRule
}

// Summary counts findings per severity tier.
type Summary struct {
	Total  int
	High   int
	Medium int
	Low    int
}

// AnalysisResult is the engine output for one group catalog.
type AnalysisResult struct {
	Summary  Summary
	Findings []Finding
}

// Service defines the rule evaluation interface.
type Service interface {
	EvaluatePermission(perm inventory.PermissionRecord, groupID, groupName string, catalog []rules.SecurityRule) []Finding
	DetectUnusedGroups(groups []inventory.SecurityGroupRecord, activeGroupIDs map[string]bool, catalog []rules.SecurityRule) []Finding
	Analyze(groups []inventory.SecurityGroupRecord, activeGroupIDs map[string]bool, catalog []rules.SecurityRule) AnalysisResult
}

type service struct{}

// NewService creates a new audit service.
func NewService() Service {
	return &service{}
}
