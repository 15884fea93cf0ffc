package rules

import (
	"fmt"

	"github.com/aretha12/MoGrow/internal/config"
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/rs/zerolog"
)

// Loader turns YAML rule set configuration into validated rule sets
type Loader struct {
	logger *zerolog.Logger
}

func NewLoader(logger *zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

func (l *Loader) BuildFromConfig(cfg *config.RuleSetsConfig) ([]RuleSet, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rule sets config is nil")
	}

	sets := make([]RuleSet, 0, len(cfg.RuleSets))
	for _, setCfg := range cfg.RuleSets {
		set, err := buildRuleSet(setCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build rule set %s: %w", setCfg.Name, err)
		}
		if err := Validate(set); err != nil {
			return nil, err
		}
		sets = append(sets, set)

		l.logger.Info().
			Str("rule_set", set.Name).
			Str("subject", string(set.Subject)).
			Int("rules", len(set.Rules)).
			Msg("rule set loaded")
	}

	return sets, nil
}

func buildRuleSet(cfg config.RuleSetConfiguration) (RuleSet, error) {
	subject := models.Subject(cfg.Subject)
	set := RuleSet{
		Name:        cfg.Name,
		Subject:     subject,
		Description: cfg.Description,
		Rules:       make([]Rule, 0, len(cfg.Rules)),
	}

	for _, ruleCfg := range cfg.Rules {
		label, err := models.ParseLabel(subject, ruleCfg.Label)
		if err != nil {
			return RuleSet{}, fmt.Errorf("rule %s: %w", ruleCfg.Name, err)
		}

		rule := Rule{
			Name:        ruleCfg.Name,
			Description: ruleCfg.Description,
			Label:       label,
		}
		for _, name := range ruleCfg.WhenModel {
			when, err := models.ParseLabel(subject, name)
			if err != nil {
				return RuleSet{}, fmt.Errorf("rule %s: when_model: %w", ruleCfg.Name, err)
			}
			rule.WhenModel = append(rule.WhenModel, when)
		}
		for _, c := range ruleCfg.Conditions {
			rule.Conditions = append(rule.Conditions, Condition{
				Field: c.Field,
				Op:    Operator(c.Op),
				Value: c.Value,
			})
		}
		set.Rules = append(set.Rules, rule)
	}
	return set, nil
}
