// Package rules loads and serves the security rule catalog.
package rules

import "sync"

// Severity levels understood by the catalog.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"
)

// Reserved rule IDs that drive whole check categories. If the catalog does
// not contain one of these, the matching check never fires.
const (
	RuleWidePortRange = "wide-port-range"
	RuleAllTraffic    = "all-traffic"
	RuleUnusedGroup   = "unused-group"
)

// Kind classifies what a catalog rule evaluates.
type Kind int

const (
	KindUnknown Kind = iota
	KindPointPort
	KindWideRange
	KindAllTraffic
	KindUnusedGroup
)

// SecurityRule is one catalog entry. Rules are immutable once loaded.
type SecurityRule struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	Port           *int32 `json:"port,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	Source         string `json:"source,omitempty"`
	Recommendation string `json:"recommendation"`
	Kind           Kind   `json:"-"`
}

type catalogFile struct {
	Rules []SecurityRule `json:"rules"`
}

// Service loads the rule catalog. The default-path load is memoized on the
// service instance; explicit paths bypass the memo entirely.
type Service interface {
	Load() []SecurityRule
	LoadFrom(path string) []SecurityRule
	ResetCache()
}

type service struct {
	defaultPath string

	mu     sync.Mutex
	cached []SecurityRule
	loaded bool
}
