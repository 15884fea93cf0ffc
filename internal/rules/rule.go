package rules

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretha12/MoGrow/internal/models"
)

type Operator string

const (
	OpLT  Operator = "lt"
	OpLTE Operator = "lte"
	OpGT  Operator = "gt"
	OpGTE Operator = "gte"
	OpEQ  Operator = "eq"
	OpNE  Operator = "ne"
)

var operatorSymbols = map[Operator]string{
	OpLT:  "<",
	OpLTE: "<=",
	OpGT:  ">",
	OpGTE: ">=",
	OpEQ:  "==",
	OpNE:  "!=",
}

type Condition struct {
	Field string
	Op    Operator
	Value float64
}

func (c Condition) Holds(obs models.Observation) bool {
	value, ok := obs.Field(c.Field)
	if !ok {
		return false
	}
	switch c.Op {
	case OpLT:
		return value < c.Value
	case OpLTE:
		return value <= c.Value
	case OpGT:
		return value > c.Value
	case OpGTE:
		return value >= c.Value
	case OpEQ:
		return value == c.Value
	case OpNE:
		return value != c.Value
	}
	return false
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, operatorSymbols[c.Op], strconv.FormatFloat(c.Value, 'f', -1, 64))
}

// Rule forces Label when the model output is one of WhenModel (any, if
// empty) and every condition holds.
type Rule struct {
	Name        string
	Description string
	Label       models.Label
	WhenModel   []models.Label
	Conditions  []Condition
}

func (r Rule) Matches(obs models.Observation, modelLabel models.Label) bool {
	if len(r.WhenModel) > 0 && !slices.Contains(r.WhenModel, modelLabel) {
		return false
	}
	for _, c := range r.Conditions {
		if !c.Holds(obs) {
			return false
		}
	}
	return true
}

func (r Rule) describe(subject models.Subject) string {
	if r.Description != "" {
		return r.Description
	}
	parts := make([]string, 0, len(r.Conditions)+1)
	if len(r.WhenModel) > 0 {
		names := make([]string, len(r.WhenModel))
		for i, l := range r.WhenModel {
			names[i] = models.LabelName(subject, l)
		}
		parts = append(parts, "model in ["+strings.Join(names, ",")+"]")
	}
	for _, c := range r.Conditions {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " and ")
}

type RuleSet struct {
	Name        string
	Subject     models.Subject
	Description string
	Rules       []Rule
}

// Evaluate applies the first matching rule, or passes the model label
// through when none match. It has no side effects.
func Evaluate(set RuleSet, obs models.Observation, modelLabel models.Label) models.DecisionResult {
	result := models.DecisionResult{
		Subject:    set.Subject,
		RuleSet:    set.Name,
		ModelLabel: modelLabel,
	}

	for _, rule := range set.Rules {
		if !rule.Matches(obs, modelLabel) {
			continue
		}
		result.FinalLabel = rule.Label
		result.LabelName = models.LabelName(set.Subject, rule.Label)
		result.Source = models.SourceRuleOverride
		result.Rule = rule.Name
		result.Rationale = fmt.Sprintf("rule %q fired (%s): model predicted %s, overridden to %s",
			rule.Name,
			rule.describe(set.Subject),
			models.LabelName(set.Subject, modelLabel),
			result.LabelName,
		)
		return result
	}

	result.FinalLabel = modelLabel
	result.LabelName = models.LabelName(set.Subject, modelLabel)
	result.Source = models.SourceModel
	result.Rationale = fmt.Sprintf("no rule in %q matched: model prediction %s used", set.Name, result.LabelName)
	return result
}
