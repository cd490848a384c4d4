package rules

import (
	"encoding/json"
	"log"
	"os"

	"github.com/sentinelsec/sg-sentinel/service/inventory"
)

// DefaultCatalogPath is where the shipped rule catalog lives relative to the
// working directory.
const DefaultCatalogPath = "rules/catalog.json"

// NewService creates a rule repository. An empty defaultPath selects the
// shipped catalog location.
func NewService(defaultPath string) Service {
	if defaultPath == "" {
		defaultPath = DefaultCatalogPath
	}

	return &service{defaultPath: defaultPath}
}

// Load returns the catalog at the default path, reading it at most once per
// service instance.
func (s *service) Load() []SecurityRule {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cached
	}

	s.cached = readCatalog(s.defaultPath)
	s.loaded = true

	return s.cached
}

// LoadFrom reads the catalog at an explicit path without touching the memo.
func (s *service) LoadFrom(path string) []SecurityRule {
	return readCatalog(path)
}

// ResetCache clears the memoized catalog; the next Load re-reads the file.
func (s *service) ResetCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	s.loaded = false
}

// readCatalog degrades to an empty rule list on any read or parse failure so
// structural checks can still run against a broken catalog.
func readCatalog(path string) []SecurityRule {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("rules: unable to read catalog %s: %v (continuing with empty rule set)", path, err)
		return nil
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("rules: malformed catalog %s: %v (continuing with empty rule set)", path, err)
		return nil
	}

	for i := range file.Rules {
		file.Rules[i].Kind = classify(file.Rules[i])
	}

	return file.Rules
}

func classify(rule SecurityRule) Kind {
	switch rule.ID {
	case RuleWidePortRange:
		return KindWideRange
	case RuleAllTraffic:
		return KindAllTraffic
	case RuleUnusedGroup:
		return KindUnusedGroup
	}

	// Point-port rules guard against internet exposure, so only rules
	// declaring an unrestricted source participate in the port check.
	if rule.Port != nil && unrestrictedSource(rule.Source) {
		return KindPointPort
	}

	return KindUnknown
}

func unrestrictedSource(source string) bool {
	return source == inventory.UnrestrictedIPv4 || source == inventory.UnrestrictedIPv6
}

// LookupByID returns the rule with the given ID.
func LookupByID(catalog []SecurityRule, id string) (SecurityRule, bool) {
	for _, rule := range catalog {
		if rule.ID == id {
			return rule, true
		}
	}

	return SecurityRule{}, false
}

// LookupByPort returns every rule declaring the given point port.
func LookupByPort(catalog []SecurityRule, port int32) []SecurityRule {
	var matched []SecurityRule

	for _, rule := range catalog {
		if rule.Port != nil && *rule.Port == port {
			matched = append(matched, rule)
		}
	}

	return matched
}

// LookupBySeverity returns every rule carrying the given severity.
func LookupBySeverity(catalog []SecurityRule, severity string) []SecurityRule {
	var matched []SecurityRule

	for _, rule := range catalog {
		if rule.Severity == severity {
			matched = append(matched, rule)
		}
	}

	return matched
}
