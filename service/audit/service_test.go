package audit

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/rules"
)

func pointRule(id string, port int32, protocol, severity string) rules.SecurityRule {
	return rules.SecurityRule{
		ID:             id,
		Description:    fmt.Sprintf("%s is open to the internet", id),
		Severity:       severity,
		Port:           aws.Int32(port),
		Protocol:       protocol,
		Source:         inventory.UnrestrictedIPv4,
		Recommendation: "restrict access",
		Kind:           rules.KindPointPort,
	}
}

func testCatalog() []rules.SecurityRule {
	return []rules.SecurityRule{
		pointRule("ssh-open", 22, "tcp", rules.SeverityHigh),
		pointRule("rdp-open", 3389, "tcp", rules.SeverityHigh),
		pointRule("couchdb-open", 5984, "tcp", rules.SeverityMedium),
		{
			ID:             rules.RuleWidePortRange,
			Description:    "A wide range of ports is open to the internet",
			Severity:       rules.SeverityMedium,
			Recommendation: "narrow the range",
			Kind:           rules.KindWideRange,
		},
		{
			ID:             rules.RuleAllTraffic,
			Description:    "All protocols and ports are open to the internet",
			Severity:       rules.SeverityHigh,
			Recommendation: "remove the allow-all rule",
			Kind:           rules.KindAllTraffic,
		},
		{
			ID:             rules.RuleUnusedGroup,
			Description:    "Security group is not attached to any network interface",
			Severity:       rules.SeverityLow,
			Recommendation: "delete the group",
			Kind:           rules.KindUnusedGroup,
		},
	}
}

func publicTCP(from, to int32) inventory.PermissionRecord {
	return inventory.PermissionRecord{
		FromPort:   aws.Int32(from),
		ToPort:     aws.Int32(to),
		Protocol:   "tcp",
		IPv4Ranges: []string{inventory.UnrestrictedIPv4},
	}
}

func TestEvaluatePermissionPrivateIsClean(t *testing.T) {
	perm := inventory.PermissionRecord{
		FromPort:   aws.Int32(22),
		ToPort:     aws.Int32(22),
		Protocol:   "tcp",
		IPv4Ranges: []string{"10.0.0.0/8"},
	}

	got := NewService().EvaluatePermission(perm, "sg-1", "app", testCatalog())
	if len(got) != 0 {
		t.Fatalf("did not expect findings for a private permission, got %d", len(got))
	}
}

func TestEvaluatePermissionDangerousPort(t *testing.T) {
	got := NewService().EvaluatePermission(publicTCP(22, 22), "sg-1", "app", testCatalog())

	if len(got) != 1 {
		t.Fatalf("expected exactly one finding, got %d", len(got))
	}

	finding := got[0]
	if finding.RuleID != "ssh-open" || finding.Severity != rules.SeverityHigh {
		t.Fatalf("unexpected finding %+v", finding)
	}
	if finding.GroupID != "sg-1" || finding.GroupName != "app" {
		t.Fatalf("finding not attributed to the group: %+v", finding)
	}
	if finding.AffectedRule == nil {
		t.Fatalf("expected affected rule details")
	}
	if finding.AffectedRule.Port.Number != 22 || finding.AffectedRule.Protocol != "tcp" {
		t.Fatalf("unexpected affected rule %+v", finding.AffectedRule)
	}
	if finding.AffectedRule.Source != inventory.UnrestrictedIPv4 {
		t.Fatalf("expected IPv4 unrestricted source, got %q", finding.AffectedRule.Source)
	}
}

func TestEvaluatePermissionRangeMatchesEveryContainedRule(t *testing.T) {
	got := NewService().EvaluatePermission(publicTCP(20, 4000), "sg-1", "app", testCatalog())

	// 22 and 3389 fall inside 20-4000; the span itself exceeds the
	// wide-range threshold, so that fires too.
	var ids []string
	for _, finding := range got {
		ids = append(ids, finding.RuleID)
	}

	want := []string{"ssh-open", "rdp-open", rules.RuleWidePortRange}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected findings %v, got %v", want, ids)
	}
}

func TestEvaluatePermissionProtocolMismatch(t *testing.T) {
	perm := inventory.PermissionRecord{
		FromPort:   aws.Int32(22),
		ToPort:     aws.Int32(22),
		Protocol:   "udp",
		IPv4Ranges: []string{inventory.UnrestrictedIPv4},
	}

	got := NewService().EvaluatePermission(perm, "sg-1", "app", testCatalog())
	if len(got) != 0 {
		t.Fatalf("did not expect a tcp rule to match a udp permission, got %d findings", len(got))
	}
}

func TestEvaluatePermissionIPv6Source(t *testing.T) {
	perm := inventory.PermissionRecord{
		FromPort:   aws.Int32(3389),
		ToPort:     aws.Int32(3389),
		Protocol:   "tcp",
		IPv6Ranges: []string{inventory.UnrestrictedIPv6},
	}

	got := NewService().EvaluatePermission(perm, "sg-1", "app", testCatalog())
	if len(got) != 1 {
		t.Fatalf("expected one finding, got %d", len(got))
	}
	if got[0].AffectedRule.Source != inventory.UnrestrictedIPv6 {
		t.Fatalf("expected IPv6 unrestricted source, got %q", got[0].AffectedRule.Source)
	}
}

func TestEvaluatePermissionWidePortRange(t *testing.T) {
	got := NewService().EvaluatePermission(publicTCP(1000, 2000), "sg-1", "app", testCatalog())

	if len(got) != 1 {
		t.Fatalf("expected one wide-range finding, got %d", len(got))
	}

	finding := got[0]
	if finding.RuleID != rules.RuleWidePortRange || finding.Severity != rules.SeverityMedium {
		t.Fatalf("unexpected finding %+v", finding)
	}
	if finding.Description != "A wide range of ports is open to the internet (1000-2000)" {
		t.Fatalf("unexpected description %q", finding.Description)
	}
	if finding.AffectedRule.Port.String() != "1000-2000" {
		t.Fatalf("unexpected affected port %q", finding.AffectedRule.Port.String())
	}
	if finding.AffectedRule.Source != inventory.UnrestrictedIPv4 {
		t.Fatalf("unexpected source %q", finding.AffectedRule.Source)
	}
}

func TestEvaluatePermissionWideRangeThresholdBoundary(t *testing.T) {
	// A span of exactly 100 ports is not wide.
	if got := NewService().EvaluatePermission(publicTCP(1000, 1100), "sg-1", "app", testCatalog()); len(got) != 0 {
		t.Fatalf("did not expect a finding at the threshold boundary, got %d", len(got))
	}

	if got := NewService().EvaluatePermission(publicTCP(1000, 1101), "sg-1", "app", testCatalog()); len(got) != 1 {
		t.Fatalf("expected a finding one past the threshold, got %d", len(got))
	}
}

func TestEvaluatePermissionAllTraffic(t *testing.T) {
	perm := inventory.PermissionRecord{
		Protocol:   "-1",
		IPv4Ranges: []string{inventory.UnrestrictedIPv4},
	}

	got := NewService().EvaluatePermission(perm, "sg-1", "app", testCatalog())
	if len(got) != 1 {
		t.Fatalf("expected one all-traffic finding, got %d", len(got))
	}

	finding := got[0]
	if finding.RuleID != rules.RuleAllTraffic || finding.Severity != rules.SeverityHigh {
		t.Fatalf("unexpected finding %+v", finding)
	}
	if finding.AffectedRule.Port.String() != "all" || finding.AffectedRule.Protocol != "all" {
		t.Fatalf("unexpected affected rule %+v", finding.AffectedRule)
	}
}

func TestEvaluatePermissionMissingNamedRulesDisableChecks(t *testing.T) {
	catalog := []rules.SecurityRule{pointRule("ssh-open", 22, "tcp", rules.SeverityHigh)}

	wide := NewService().EvaluatePermission(publicTCP(1000, 2000), "sg-1", "app", catalog)
	if len(wide) != 0 {
		t.Fatalf("expected the wide-range check to be disabled, got %d findings", len(wide))
	}

	all := inventory.PermissionRecord{Protocol: "-1", IPv4Ranges: []string{inventory.UnrestrictedIPv4}}
	if got := NewService().EvaluatePermission(all, "sg-1", "app", catalog); len(got) != 0 {
		t.Fatalf("expected the all-traffic check to be disabled, got %d findings", len(got))
	}
}

func TestEvaluatePermissionNilPortsSkipPortChecks(t *testing.T) {
	perm := inventory.PermissionRecord{
		Protocol:   "tcp",
		IPv4Ranges: []string{inventory.UnrestrictedIPv4},
	}

	got := NewService().EvaluatePermission(perm, "sg-1", "app", testCatalog())
	if len(got) != 0 {
		t.Fatalf("did not expect port findings without a port range, got %d", len(got))
	}
}

func TestDetectUnusedGroups(t *testing.T) {
	groups := []inventory.SecurityGroupRecord{
		{ID: "sg-1", Name: "app"},
		{ID: "sg-2", Name: "stale"},
		{ID: "sg-3", Name: "default"},
	}
	active := map[string]bool{"sg-1": true}

	got := NewService().DetectUnusedGroups(groups, active, testCatalog())

	if len(got) != 1 {
		t.Fatalf("expected one unused-group finding, got %d", len(got))
	}

	finding := got[0]
	if finding.GroupID != "sg-2" || finding.RuleID != rules.RuleUnusedGroup || finding.Severity != rules.SeverityLow {
		t.Fatalf("unexpected finding %+v", finding)
	}
	if finding.Description != "Security group is not attached to any network interface: stale (sg-2)" {
		t.Fatalf("unexpected description %q", finding.Description)
	}
	if finding.AffectedRule != nil {
		t.Fatalf("did not expect affected rule details on a structural finding")
	}
}

func TestDetectUnusedGroupsDisabledWithoutRule(t *testing.T) {
	groups := []inventory.SecurityGroupRecord{{ID: "sg-2", Name: "stale"}}

	got := NewService().DetectUnusedGroups(groups, map[string]bool{}, nil)
	if len(got) != 0 {
		t.Fatalf("expected the unused-group check to be disabled, got %d findings", len(got))
	}
}

func TestAnalyze(t *testing.T) {
	groups := []inventory.SecurityGroupRecord{
		{ID: "sg-1", Name: "app", Permissions: []inventory.PermissionRecord{publicTCP(22, 22)}},
		{ID: "sg-2", Name: "stale"},
	}
	active := map[string]bool{"sg-1": true}

	result := NewService().Analyze(groups, active, testCatalog())

	if result.Summary.Total != 2 || result.Summary.High != 1 || result.Summary.Low != 1 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}

	// Permission findings come first, structural findings last.
	if result.Findings[0].RuleID != "ssh-open" || result.Findings[1].RuleID != rules.RuleUnusedGroup {
		t.Fatalf("unexpected finding order: %q then %q", result.Findings[0].RuleID, result.Findings[1].RuleID)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	groups := []inventory.SecurityGroupRecord{
		{ID: "sg-1", Name: "app", Permissions: []inventory.PermissionRecord{
			publicTCP(20, 4000),
			{Protocol: "-1", IPv4Ranges: []string{inventory.UnrestrictedIPv4}},
		}},
		{ID: "sg-2", Name: "stale"},
	}
	active := map[string]bool{}

	svc := NewService()
	first := svc.Analyze(groups, active, testCatalog())
	second := svc.Analyze(groups, active, testCatalog())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results across runs")
	}
}

func TestSummarizeCounts(t *testing.T) {
	findings := []Finding{
		{Severity: rules.SeverityHigh},
		{Severity: rules.SeverityHigh},
		{Severity: rules.SeverityMedium},
		{Severity: rules.SeverityLow},
	}

	got := summarize(findings)
	want := Summary{Total: 4, High: 2, Medium: 1, Low: 1}
	if got != want {
		t.Fatalf("summarize = %+v, want %+v", got, want)
	}
}

func TestPortSpecString(t *testing.T) {
	if got := PortNumber(22).String(); got != "22" {
		t.Fatalf("PortNumber(22).String() = %q", got)
	}
	if got := PortLabel("1000-2000").String(); got != "1000-2000" {
		t.Fatalf("PortLabel.String() = %q", got)
	}
}
