package config

// RuleSetsConfig is the YAML document listing override rule sets
type RuleSetsConfig struct {
	RuleSets []RuleSetConfiguration `yaml:"rule_sets"`
}

// RuleSetConfiguration is one named, ordered rule list for a subject
type RuleSetConfiguration struct {
	Name        string              `yaml:"name"`
	Subject     string              `yaml:"subject"`
	Description string              `yaml:"description"`
	Rules       []RuleConfiguration `yaml:"rules"`
}

// RuleConfiguration forces Label when the model output is in WhenModel and all conditions hold
type RuleConfiguration struct {
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description"`
	Label       string                   `yaml:"label"`
	WhenModel   []string                 `yaml:"when_model"`
	Conditions  []ConditionConfiguration `yaml:"conditions"`
}

type ConditionConfiguration struct {
	Field string  `yaml:"field"`
	Op    string  `yaml:"op"`
	Value float64 `yaml:"value"`
}
