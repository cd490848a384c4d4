package orchestrator

import (
	"github.com/sentinelsec/sg-sentinel/model"
	"github.com/sentinelsec/sg-sentinel/service/audit"
	"github.com/sentinelsec/sg-sentinel/service/exposure"
	"github.com/sentinelsec/sg-sentinel/service/inventory"
	"github.com/sentinelsec/sg-sentinel/service/output"
	"github.com/sentinelsec/sg-sentinel/service/rules"
	awssts "github.com/sentinelsec/sg-sentinel/service/sts"
)

// Service coordinates the scan workflow.
type Service interface {
	Orchestrate(flags model.Flags) error
}

type service struct {
	stsService       awssts.Service
	inventoryService inventory.Service
	rulesService     rules.Service
	auditService     audit.Service
	exposureService  exposure.Service
	outputService    output.Service
	versionInfo      model.VersionInfo
}

// NewService creates a new orchestrator service.
func NewService(
	stsService awssts.Service,
	inventoryService inventory.Service,
	rulesService rules.Service,
	auditService audit.Service,
	exposureService exposure.Service,
	outputService output.Service,
	versionInfo model.VersionInfo,
) Service {
	return &service{
		stsService:       stsService,
		inventoryService: inventoryService,
		rulesService:     rulesService,
		auditService:     auditService,
		exposureService:  exposureService,
		outputService:    outputService,
		versionInfo:      versionInfo,
	}
}
