package rules

import (
	"strings"
	"testing"

	"github.com/aretha12/MoGrow/internal/models"
)

func builtin(t *testing.T, name string) RuleSet {
	t.Helper()
	registry, err := NewRegistry(Builtin()...)
	if err != nil {
		t.Fatalf("built-in rule sets should be valid: %v", err)
	}
	set, err := registry.Get(name)
	if err != nil {
		t.Fatalf("missing built-in %s: %v", name, err)
	}
	return set
}

func child(age, length, weight float64) models.ChildObservation {
	return models.ChildObservation{
		AgeMonths:       age,
		BirthWeightKg:   3,
		BirthLengthCm:   49,
		CurrentWeightKg: weight,
		CurrentLengthCm: length,
	}
}

func maternal(systolic, diastolic, sugar, heart float64) models.MaternalObservation {
	return models.MaternalObservation{
		AgeYears:      28,
		SystolicMmHg:  systolic,
		DiastolicMmHg: diastolic,
		BloodSugar:    sugar,
		Temperature:   36.5,
		HeartRateBpm:  heart,
	}
}

var childLabels = []models.Label{models.NotStunted, models.Stunted}

func TestChildV1_OverridesToNotStunted(t *testing.T) {
	set := builtin(t, ChildOverrideNormal)

	for _, age := range []float64{12, 18, 36, 60} {
		for _, length := range []float64{75, 80, 110, 130} {
			for _, weight := range []float64{9, 12, 25} {
				for _, modelLabel := range childLabels {
					got := Evaluate(set, child(age, length, weight), modelLabel)
					if got.FinalLabel != models.NotStunted || got.Source != models.SourceRuleOverride {
						t.Errorf("age=%v length=%v weight=%v model=%v: got %v/%s, want not_stunted/rule_override",
							age, length, weight, modelLabel, got.FinalLabel, got.Source)
					}
					if got.Rule != "growth-on-track" {
						t.Errorf("expected rule growth-on-track, got %q", got.Rule)
					}
				}
			}
		}
	}
}

func TestChildV1_PassesModelThroughBelowThreshold(t *testing.T) {
	set := builtin(t, ChildOverrideNormal)

	tests := []struct {
		name                string
		age, length, weight float64
	}{
		{"age just under 12", 11.9, 80, 10},
		{"length just under 75", 24, 74.9, 10},
		{"weight just under 9", 24, 80, 8.9},
		{"infant", 3, 55, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, modelLabel := range childLabels {
				got := Evaluate(set, child(tt.age, tt.length, tt.weight), modelLabel)
				if got.Source != models.SourceModel || got.FinalLabel != modelLabel {
					t.Errorf("model=%v: got %v/%s, want model label unchanged", modelLabel, got.FinalLabel, got.Source)
				}
				if got.Rule != "" {
					t.Errorf("expected no rule, got %q", got.Rule)
				}
			}
		})
	}
}

func TestChildV2_DefinitelyStuntedWinsOverModel(t *testing.T) {
	set := builtin(t, ChildTwoSided)

	for _, age := range []float64{36, 42, 60} {
		for _, length := range []float64{40, 75, 89.9} {
			for _, weight := range []float64{5, 13, 25} {
				got := Evaluate(set, child(age, length, weight), models.NotStunted)
				if got.FinalLabel != models.Stunted || got.Source != models.SourceRuleOverride {
					t.Errorf("age=%v length=%v weight=%v: got %v/%s, want stunted/rule_override",
						age, length, weight, got.FinalLabel, got.Source)
				}
				if got.Rule != "definitely-stunted-36m" {
					t.Errorf("expected definitely-stunted-36m, got %q", got.Rule)
				}
			}
		}
	}
}

func TestChildV2_Bands(t *testing.T) {
	set := builtin(t, ChildTwoSided)

	tests := []struct {
		name                string
		age, length, weight float64
		modelLabel          models.Label
		wantLabel           models.Label
		wantSource          models.Source
		wantRule            string
	}{
		{"24m short", 24, 84.9, 12, models.NotStunted, models.Stunted, models.SourceRuleOverride, "definitely-stunted-24m"},
		{"35m at 85cm is not definite", 35, 85, 11, models.Stunted, models.Stunted, models.SourceModel, ""},
		{"12m short", 12, 74, 9, models.NotStunted, models.Stunted, models.SourceRuleOverride, "definitely-stunted-12m"},
		{"under 12m never definite", 11, 50, 4, models.NotStunted, models.NotStunted, models.SourceModel, ""},
		{"36m normal", 40, 96, 14, models.Stunted, models.NotStunted, models.SourceRuleOverride, "growth-normal-36m"},
		{"36m tall but light", 40, 96, 12, models.Stunted, models.Stunted, models.SourceModel, ""},
		{"24m normal", 30, 86, 11.5, models.Stunted, models.NotStunted, models.SourceRuleOverride, "growth-normal-24m"},
		{"12m normal", 12, 75, 9, models.Stunted, models.NotStunted, models.SourceRuleOverride, "growth-normal-12m"},
		{"6m normal", 6, 65, 7, models.Stunted, models.NotStunted, models.SourceRuleOverride, "growth-normal-6m"},
		{"5m falls through", 5, 65, 7, models.Stunted, models.Stunted, models.SourceModel, ""},
		{"36m between bands", 48, 92, 14, models.Stunted, models.Stunted, models.SourceModel, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(set, child(tt.age, tt.length, tt.weight), tt.modelLabel)
			if got.FinalLabel != tt.wantLabel {
				t.Errorf("FinalLabel: %v, want %v", got.FinalLabel, tt.wantLabel)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source: %s, want %s", got.Source, tt.wantSource)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Rule: %q, want %q", got.Rule, tt.wantRule)
			}
			if got.ModelLabel != tt.modelLabel {
				t.Errorf("ModelLabel: %v, want %v", got.ModelLabel, tt.modelLabel)
			}
		})
	}
}

func TestMaternalDowngrade(t *testing.T) {
	set := builtin(t, MaternalDowngrade)

	tests := []struct {
		name       string
		obs        models.MaternalObservation
		modelLabel models.Label
		wantLabel  models.Label
		wantSource models.Source
	}{
		{"all guards hold", maternal(130, 85, 6, 90), models.HighRisk, models.MediumRisk, models.SourceRuleOverride},
		{"systolic too high", maternal(150, 85, 6, 90), models.HighRisk, models.HighRisk, models.SourceModel},
		{"systolic at 140", maternal(140, 85, 6, 90), models.HighRisk, models.HighRisk, models.SourceModel},
		{"diastolic at 90 allowed", maternal(130, 90, 6, 90), models.HighRisk, models.MediumRisk, models.SourceRuleOverride},
		{"diastolic over 90", maternal(130, 91, 6, 90), models.HighRisk, models.HighRisk, models.SourceModel},
		{"sugar at 8", maternal(130, 85, 8, 90), models.HighRisk, models.HighRisk, models.SourceModel},
		{"heart rate at 100", maternal(130, 85, 6, 100), models.HighRisk, models.HighRisk, models.SourceModel},
		{"medium model untouched", maternal(130, 85, 6, 90), models.MediumRisk, models.MediumRisk, models.SourceModel},
		{"low model untouched", maternal(130, 85, 6, 90), models.LowRisk, models.LowRisk, models.SourceModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(set, tt.obs, tt.modelLabel)
			if got.FinalLabel != tt.wantLabel || got.Source != tt.wantSource {
				t.Errorf("got %v/%s, want %v/%s", got.FinalLabel, got.Source, tt.wantLabel, tt.wantSource)
			}
		})
	}
}

func TestPassthroughSets(t *testing.T) {
	for _, name := range []string{ChildPassthrough, MaternalPassthrough} {
		set := builtin(t, name)
		var obs models.Observation = child(30, 80, 10)
		if set.Subject == models.SubjectMaternal {
			obs = maternal(130, 85, 6, 90)
		}
		got := Evaluate(set, obs, models.Label(1))
		if got.Source != models.SourceModel || got.FinalLabel != 1 {
			t.Errorf("%s: got %v/%s, want model label", name, got.FinalLabel, got.Source)
		}
	}
}

func TestEvaluate_Rationale(t *testing.T) {
	set := builtin(t, MaternalDowngrade)

	fired := Evaluate(set, maternal(130, 85, 6, 90), models.HighRisk)
	if !strings.Contains(fired.Rationale, "vitals-within-guard") {
		t.Errorf("rationale should name the fired rule: %q", fired.Rationale)
	}
	if fired.LabelName != "medium_risk" {
		t.Errorf("LabelName: %q, want medium_risk", fired.LabelName)
	}

	passed := Evaluate(set, maternal(150, 85, 6, 90), models.HighRisk)
	if !strings.Contains(passed.Rationale, "no rule") || !strings.Contains(passed.Rationale, "high_risk") {
		t.Errorf("rationale should state the model label was used: %q", passed.Rationale)
	}
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	set := RuleSet{
		Name:    "ordered",
		Subject: models.SubjectChild,
		Rules: []Rule{
			{Name: "first", Label: models.Stunted, Conditions: []Condition{cond("age_months", OpGTE, 0)}},
			{Name: "second", Label: models.NotStunted, Conditions: []Condition{cond("age_months", OpGTE, 0)}},
		},
	}

	got := Evaluate(set, child(10, 70, 8), models.NotStunted)
	if got.Rule != "first" || got.FinalLabel != models.Stunted {
		t.Errorf("expected first rule to win, got %q/%v", got.Rule, got.FinalLabel)
	}
}

func TestRuleDescribe_GeneratedFromConditions(t *testing.T) {
	rule := Rule{
		Name:       "generated",
		Label:      models.MediumRisk,
		WhenModel:  []models.Label{models.HighRisk},
		Conditions: []Condition{cond("systolic_mmhg", OpLT, 140), cond("blood_sugar", OpLTE, 7.5)},
	}

	got := rule.describe(models.SubjectMaternal)
	want := "model in [high_risk] and systolic_mmhg < 140 and blood_sugar <= 7.5"
	if got != want {
		t.Errorf("describe() = %q, want %q", got, want)
	}
}
