package rules

import (
	"fmt"
	"slices"

	"github.com/aretha12/MoGrow/internal/models"
)

// Registry maps rule set names to rule sets. It is filled at startup and
// only read afterwards.
type Registry struct {
	sets  map[string]RuleSet
	order []string
}

func NewRegistry(sets ...RuleSet) (*Registry, error) {
	r := &Registry{sets: make(map[string]RuleSet)}
	for _, set := range sets {
		if err := r.Register(set); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a rule set, replacing any earlier set with the same name.
func (r *Registry) Register(set RuleSet) error {
	if err := Validate(set); err != nil {
		return err
	}
	if _, exists := r.sets[set.Name]; !exists {
		r.order = append(r.order, set.Name)
	}
	r.sets[set.Name] = set
	return nil
}

func (r *Registry) Get(name string) (RuleSet, error) {
	set, ok := r.sets[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", models.ErrRuleSetNotFound, name)
	}
	return set, nil
}

func (r *Registry) List() []RuleSet {
	sets := make([]RuleSet, 0, len(r.order))
	for _, name := range r.order {
		sets = append(sets, r.sets[name])
	}
	return sets
}

func Validate(set RuleSet) error {
	if set.Name == "" {
		return fmt.Errorf("rule set missing name")
	}
	fields := models.FieldNames(set.Subject)
	if fields == nil {
		return fmt.Errorf("rule set %s: unknown subject %q", set.Name, set.Subject)
	}
	labels := models.Labels(set.Subject)

	seen := make(map[string]bool, len(set.Rules))
	for i, rule := range set.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rule set %s: rule %d missing name", set.Name, i)
		}
		if seen[rule.Name] {
			return fmt.Errorf("rule set %s: duplicate rule name %q", set.Name, rule.Name)
		}
		seen[rule.Name] = true

		if !slices.Contains(labels, rule.Label) {
			return fmt.Errorf("rule set %s: rule %s: invalid label %d", set.Name, rule.Name, rule.Label)
		}
		for _, l := range rule.WhenModel {
			if !slices.Contains(labels, l) {
				return fmt.Errorf("rule set %s: rule %s: invalid model label %d", set.Name, rule.Name, l)
			}
		}
		if len(rule.Conditions) == 0 && len(rule.WhenModel) == 0 {
			return fmt.Errorf("rule set %s: rule %s has no conditions", set.Name, rule.Name)
		}
		for _, c := range rule.Conditions {
			if !slices.Contains(fields, c.Field) {
				return fmt.Errorf("rule set %s: rule %s: unknown field %q", set.Name, rule.Name, c.Field)
			}
			if _, ok := operatorSymbols[c.Op]; !ok {
				return fmt.Errorf("rule set %s: rule %s: unknown operator %q", set.Name, rule.Name, c.Op)
			}
		}
	}
	return nil
}
