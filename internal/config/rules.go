package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultRulesConfigPath = "configs/rules.yaml"

var validSubjects = map[string]bool{"child": true, "maternal": true}

// LoadRuleSetsConfig reads RULES_CONFIG_PATH, or configs/rules.yaml when unset.
func LoadRuleSetsConfig() (*RuleSetsConfig, error) {
	path := os.Getenv("RULES_CONFIG_PATH")
	if path == "" {
		path = DefaultRulesConfigPath
	}
	return LoadRuleSetsConfigFile(path)
}

func LoadRuleSetsConfigFile(path string) (*RuleSetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RuleSetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsNotExist reports whether a load failed only because the file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func applyDefaults(cfg *RuleSetsConfig) {
	for i := range cfg.RuleSets {
		set := &cfg.RuleSets[i]
		set.Name = strings.TrimSpace(set.Name)
		set.Subject = strings.ToLower(strings.TrimSpace(set.Subject))
		for j := range set.Rules {
			rule := &set.Rules[j]
			rule.Label = strings.ToLower(strings.TrimSpace(rule.Label))
			for k := range rule.WhenModel {
				rule.WhenModel[k] = strings.ToLower(strings.TrimSpace(rule.WhenModel[k]))
			}
			for k := range rule.Conditions {
				rule.Conditions[k].Op = strings.ToLower(strings.TrimSpace(rule.Conditions[k].Op))
			}
		}
	}
}

// Validate checks the document shape. Field, operator and label names are
// checked when the rule sets are built.
func (c *RuleSetsConfig) Validate() error {
	if len(c.RuleSets) == 0 {
		return fmt.Errorf("no rule sets configured")
	}

	names := make(map[string]bool, len(c.RuleSets))
	for i, set := range c.RuleSets {
		if set.Name == "" {
			return fmt.Errorf("rule set %d: missing name", i)
		}
		if names[set.Name] {
			return fmt.Errorf("duplicate rule set name %q", set.Name)
		}
		names[set.Name] = true

		if !validSubjects[set.Subject] {
			return fmt.Errorf("rule set %s: invalid subject %q", set.Name, set.Subject)
		}
		for j, rule := range set.Rules {
			if rule.Name == "" {
				return fmt.Errorf("rule set %s: rule %d: missing name", set.Name, j)
			}
			if rule.Label == "" {
				return fmt.Errorf("rule set %s: rule %s: missing label", set.Name, rule.Name)
			}
		}
	}
	return nil
}
