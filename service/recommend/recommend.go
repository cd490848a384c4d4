// Package recommend synthesizes remediation guidance from finding summaries
// and exposure data. All functions are pure and their output order is stable:
// HIGH-driven guidance first, then MEDIUM-driven, then generic guidance.
package recommend

import (
	"fmt"
	"strings"

	"github.com/sentinelsec/sg-sentinel/service/audit"
)

// DangerousPorts maps always-high-risk service ports to the service name
// used in remediation text.
var DangerousPorts = map[int32]string{
	22:    "SSH",
	3389:  "RDP",
	3306:  "MySQL",
	5432:  "PostgreSQL",
	1433:  "MSSQL",
	6379:  "Redis",
	27017: "MongoDB",
	5984:  "CouchDB",
}

// exposedPortWarningCount is the port count above which an instance's
// exposure is called out as too broad.
const exposedPortWarningCount = 5

// ForFindings turns a severity summary into ordered remediation guidance.
func ForFindings(summary audit.Summary) []string {
	var recs []string

	if summary.High > 0 {
		recs = append(recs, fmt.Sprintf("Address the %d HIGH severity finding(s) first: close internet-facing access to sensitive services", summary.High))
	}

	if summary.Medium > 0 {
		recs = append(recs, fmt.Sprintf("Review the %d MEDIUM severity finding(s): narrow wide port ranges to the ports each service needs", summary.Medium))
	}

	recs = append(recs,
		"Audit security group rules regularly and delete rules that no longer serve a workload",
		"Prefer security group references over CIDR ranges for instance-to-instance traffic",
	)

	return recs
}

// ForExposedPorts turns an instance's public port surface into ordered
// remediation guidance. The input is the sorted, deduplicated exposed set.
func ForExposedPorts(ports []int32) []string {
	var recs []string

	if dangerous := dangerousPortNames(ports); len(dangerous) > 0 {
		recs = append(recs, fmt.Sprintf("Close or restrict public access to sensitive services: %s", strings.Join(dangerous, ", ")))
	}

	if len(ports) > exposedPortWarningCount {
		recs = append(recs, fmt.Sprintf("Reduce the exposed surface: %d ports are reachable from the internet", len(ports)))
	}

	if len(ports) > 0 {
		recs = append(recs, "Front public services with a load balancer and keep instances in private subnets, or require VPN access")
	}

	return recs
}

func dangerousPortNames(ports []int32) []string {
	var names []string

	for _, port := range ports {
		if name, ok := DangerousPorts[port]; ok {
			names = append(names, fmt.Sprintf("%s (%d)", name, port))
		}
	}

	return names
}
