// Package exposure aggregates publicly reachable ports per instance and
// classifies the resulting risk.
package exposure

import (
	"github.com/sentinelsec/sg-sentinel/service/inventory"
)

// Risk levels assigned to instance exposure.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// InstanceExposure summarizes one instance's public port surface.
type InstanceExposure struct {
	InstanceID      string
	InstanceName    string
	PublicIP        string
	GroupIDs        []string
	ExposedPorts    []int32
	RiskLevel       string
	Recommendations []string
}

// Service defines the exposure aggregation interface.
type Service interface {
	Aggregate(instance inventory.InstanceRecord, attachedGroups []inventory.SecurityGroupRecord) InstanceExposure
}

type service struct{}

// NewService creates a new exposure service.
func NewService() Service {
	return &service{}
}
