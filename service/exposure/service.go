package exposure

import (
	"slices"

	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/recommend"
)

// mediumPortCountThreshold is the exposed-port count above which an instance
// without dangerous ports is still rated MEDIUM.
const mediumPortCountThreshold = 5

// Aggregate unions every publicly reachable port across the instance's
// attached groups into a sorted, deduplicated set and classifies the risk.
// Protocol is ignored for the union: TCP and UDP share one exposure set.
func (s *service) Aggregate(instance inventory.InstanceRecord, attachedGroups []inventory.SecurityGroupRecord) InstanceExposure {
	ports := make(map[int32]bool)

	for _, group := range attachedGroups {
		for _, perm := range group.Permissions {
			if !perm.Public() {
				continue
			}

			// Permissions without a bounded port range contribute nothing.
			if perm.FromPort == nil || perm.ToPort == nil {
				continue
			}

			// ICMP encodes type/code pairs in the port fields, not ports.
			if *perm.FromPort < 0 || *perm.FromPort > *perm.ToPort {
				continue
			}

			for port := *perm.FromPort; port <= *perm.ToPort; port++ {
				ports[port] = true
			}
		}
	}

	exposed := make([]int32, 0, len(ports))
	for port := range ports {
		exposed = append(exposed, port)
	}
	slices.Sort(exposed)

	return InstanceExposure{
		InstanceID:      instance.ID,
		InstanceName:    instance.Name,
		PublicIP:        instance.PublicIP,
		GroupIDs:        instance.GroupIDs,
		ExposedPorts:    exposed,
		RiskLevel:       ClassifyRisk(exposed),
		Recommendations: recommend.ForExposedPorts(exposed),
	}
}

// ClassifyRisk derives the risk level from the exposed port set alone:
// HIGH when any dangerous service port is exposed, MEDIUM when more than
// five ports are, LOW otherwise.
func ClassifyRisk(exposedPorts []int32) string {
	for _, port := range exposedPorts {
		if _, ok := recommend.DangerousPorts[port]; ok {
			return RiskHigh
		}
	}

	if len(exposedPorts) > mediumPortCountThreshold {
		return RiskMedium
	}

	return RiskLow
}
