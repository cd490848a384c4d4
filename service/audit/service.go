package audit

import (
	"fmt"

	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/rules"
)

// widePortRangeThreshold is the span above which an open port range is
// reported as a finding of its own.
const widePortRangeThreshold = 100

// wildcardProtocol is the EC2 value meaning every protocol.
const wildcardProtocol = "-1"

// defaultGroupName is the reserved name of the implicit VPC group. It cannot
// be deleted, so it is never reported as unused.
const defaultGroupName = "default"

// EvaluatePermission checks one ingress permission against the catalog.
// Permissions that are not open to the internet never produce findings.
func (s *service) EvaluatePermission(perm inventory.PermissionRecord, groupID, groupName string, catalog []rules.SecurityRule) []Finding {
	if !perm.Public() {
		return nil
	}

	var findings []Finding

	findings = append(findings, dangerousPortFindings(perm, groupID, groupName, catalog)...)

	if finding, ok := widePortRangeFinding(perm, groupID, groupName, catalog); ok {
		findings = append(findings, finding)
	}

	if finding, ok := allTrafficFinding(perm, groupID, groupName, catalog); ok {
		findings = append(findings, finding)
	}

	return findings
}

// dangerousPortFindings emits one finding per point-port rule whose port
// falls inside the permission's range on a matching protocol. Permissions
// without a port range skip this check.
func dangerousPortFindings(perm inventory.PermissionRecord, groupID, groupName string, catalog []rules.SecurityRule) []Finding {
	if perm.FromPort == nil || perm.ToPort == nil {
		return nil
	}

	source := matchedSource(perm)

	var findings []Finding

	for _, rule := range catalog {
		if rule.Kind != rules.KindPointPort {
			continue
		}

		if rule.Protocol != perm.Protocol {
			continue
		}

		if *perm.FromPort > *rule.Port || *rule.Port > *perm.ToPort {
			continue
		}

		findings = append(findings, Finding{
			GroupID:        groupID,
			GroupName:      groupName,
			RuleID:         rule.ID,
			Severity:       rule.Severity,
			Description:    rule.Description,
			Recommendation: rule.Recommendation,
			AffectedRule: &AffectedRule{
				Port:     PortNumber(*rule.Port),
				Protocol: rule.Protocol,
				Source:   source,
			},
		})
	}

	return findings
}

// widePortRangeFinding reports permissions spanning more ports than the
// threshold. The check is disabled when the catalog lacks the wide-port-range
// rule.
func widePortRangeFinding(perm inventory.PermissionRecord, groupID, groupName string, catalog []rules.SecurityRule) (Finding, bool) {
	if perm.FromPort == nil || perm.ToPort == nil {
		return Finding{}, false
	}

	if *perm.ToPort-*perm.FromPort <= widePortRangeThreshold {
		return Finding{}, false
	}

	rule, ok := rules.LookupByID(catalog, rules.RuleWidePortRange)
	if !ok {
		return Finding{}, false
	}

	span := fmt.Sprintf("%d-%d", *perm.FromPort, *perm.ToPort)

	return Finding{
		GroupID:        groupID,
		GroupName:      groupName,
		RuleID:         rule.ID,
		Severity:       rule.Severity,
		Description:    fmt.Sprintf("%s (%s)", rule.Description, span),
		Recommendation: rule.Recommendation,
		AffectedRule: &AffectedRule{
			Port:     PortLabel(span),
			Protocol: perm.Protocol,
			Source:   firstSource(perm),
		},
	}, true
}

// allTrafficFinding reports wildcard-protocol permissions open to the
// internet. The check is disabled when the catalog lacks the all-traffic rule.
func allTrafficFinding(perm inventory.PermissionRecord, groupID, groupName string, catalog []rules.SecurityRule) (Finding, bool) {
	if perm.Protocol != wildcardProtocol {
		return Finding{}, false
	}

	rule, ok := rules.LookupByID(catalog, rules.RuleAllTraffic)
	if !ok {
		return Finding{}, false
	}

	return Finding{
		GroupID:        groupID,
		GroupName:      groupName,
		RuleID:         rule.ID,
		Severity:       rule.Severity,
		Description:    rule.Description,
		Recommendation: rule.Recommendation,
		AffectedRule: &AffectedRule{
			Port:     PortLabel("all"),
			Protocol: "all",
			Source:   matchedSource(perm),
		},
	}, true
}

// matchedSource returns the unrestricted CIDR that made the permission public.
func matchedSource(perm inventory.PermissionRecord) string {
	if perm.PublicIPv4() {
		return inventory.UnrestrictedIPv4
	}

	return inventory.UnrestrictedIPv6
}

// firstSource returns the first listed IPv4 range, else the first IPv6 range.
func firstSource(perm inventory.PermissionRecord) string {
	if len(perm.IPv4Ranges) > 0 {
		return perm.IPv4Ranges[0]
	}

	if len(perm.IPv6Ranges) > 0 {
		return perm.IPv6Ranges[0]
	}

	return "unknown"
}

// DetectUnusedGroups flags every catalog group that is not attached to any
// network interface. The implicit default group is exempt, and the check is
// disabled when the catalog lacks the unused-group rule.
func (s *service) DetectUnusedGroups(groups []inventory.SecurityGroupRecord, activeGroupIDs map[string]bool, catalog []rules.SecurityRule) []Finding {
	rule, ok := rules.LookupByID(catalog, rules.RuleUnusedGroup)
	if !ok {
		return nil
	}

	var findings []Finding

	for _, group := range groups {
		if activeGroupIDs[group.ID] {
			continue
		}

		if group.Name == defaultGroupName {
			continue
		}

		findings = append(findings, Finding{
			GroupID:        group.ID,
			GroupName:      group.Name,
			RuleID:         rule.ID,
			Severity:       rule.Severity,
			Description:    fmt.Sprintf("%s: %s (%s)", rule.Description, group.Name, group.ID),
			Recommendation: rule.Recommendation,
		})
	}

	return findings
}

// Analyze runs the permission evaluator over every group in input order,
// appends unused-group findings, and totals the severity counts.
func (s *service) Analyze(groups []inventory.SecurityGroupRecord, activeGroupIDs map[string]bool, catalog []rules.SecurityRule) AnalysisResult {
	var findings []Finding

	for _, group := range groups {
		for _, perm := range group.Permissions {
			findings = append(findings, s.EvaluatePermission(perm, group.ID, group.Name, catalog)...)
		}
	}

	findings = append(findings, s.DetectUnusedGroups(groups, activeGroupIDs, catalog)...)

	return AnalysisResult{
		Summary:  summarize(findings),
		Findings: findings,
	}
}

func summarize(findings []Finding) Summary {
	summary := Summary{Total: len(findings)}

	for _, finding := range findings {
		switch finding.Severity {
		case rules.SeverityHigh:
			summary.High++
		case rules.SeverityMedium:
			summary.Medium++
		case rules.SeverityLow:
			summary.Low++
		}
	}

	return summary
}
