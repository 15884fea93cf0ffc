package rules

import "github.com/aretha12/MoGrow/internal/models"

const (
	ChildOverrideNormal = "child-v1"
	ChildTwoSided       = "child-v2"
	ChildPassthrough    = "child-passthrough"
	MaternalDowngrade   = "maternal-downgrade"
	MaternalPassthrough = "maternal-passthrough"
)

func cond(field string, op Operator, value float64) Condition {
	return Condition{Field: field, Op: op, Value: value}
}

// Builtin returns every rule variant the screening forms have shipped with.
func Builtin() []RuleSet {
	return []RuleSet{
		{
			Name:        ChildOverrideNormal,
			Subject:     models.SubjectChild,
			Description: "force not stunted when growth is on track for age",
			Rules: []Rule{
				{
					Name:        "growth-on-track",
					Description: "age >= 12 months, length >= 75 cm, weight >= 9 kg",
					Label:       models.NotStunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 12),
						cond("current_length_cm", OpGTE, 75),
						cond("current_weight_kg", OpGTE, 9),
					},
				},
			},
		},
		{
			Name:        ChildTwoSided,
			Subject:     models.SubjectChild,
			Description: "definite stunting by length for age, then normal growth by length and weight for age",
			Rules: []Rule{
				{
					Name:        "definitely-stunted-36m",
					Description: "age >= 36 months and length < 90 cm",
					Label:       models.Stunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 36),
						cond("current_length_cm", OpLT, 90),
					},
				},
				{
					Name:        "definitely-stunted-24m",
					Description: "age 24-35 months and length < 85 cm",
					Label:       models.Stunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 24),
						cond("age_months", OpLT, 36),
						cond("current_length_cm", OpLT, 85),
					},
				},
				{
					Name:        "definitely-stunted-12m",
					Description: "age 12-23 months and length < 75 cm",
					Label:       models.Stunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 12),
						cond("age_months", OpLT, 24),
						cond("current_length_cm", OpLT, 75),
					},
				},
				{
					Name:        "growth-normal-36m",
					Description: "age >= 36 months, length >= 95 cm, weight >= 13 kg",
					Label:       models.NotStunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 36),
						cond("current_length_cm", OpGTE, 95),
						cond("current_weight_kg", OpGTE, 13),
					},
				},
				{
					Name:        "growth-normal-24m",
					Description: "age 24-35 months, length >= 86 cm, weight >= 11.5 kg",
					Label:       models.NotStunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 24),
						cond("age_months", OpLT, 36),
						cond("current_length_cm", OpGTE, 86),
						cond("current_weight_kg", OpGTE, 11.5),
					},
				},
				{
					Name:        "growth-normal-12m",
					Description: "age 12-23 months, length >= 75 cm, weight >= 9 kg",
					Label:       models.NotStunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 12),
						cond("age_months", OpLT, 24),
						cond("current_length_cm", OpGTE, 75),
						cond("current_weight_kg", OpGTE, 9),
					},
				},
				{
					Name:        "growth-normal-6m",
					Description: "age 6-11 months, length >= 65 cm, weight >= 7 kg",
					Label:       models.NotStunted,
					Conditions: []Condition{
						cond("age_months", OpGTE, 6),
						cond("age_months", OpLT, 12),
						cond("current_length_cm", OpGTE, 65),
						cond("current_weight_kg", OpGTE, 7),
					},
				},
			},
		},
		{
			Name:        ChildPassthrough,
			Subject:     models.SubjectChild,
			Description: "model prediction only",
		},
		{
			Name:        MaternalDowngrade,
			Subject:     models.SubjectMaternal,
			Description: "downgrade high risk to medium when every vital is within its guard",
			Rules: []Rule{
				{
					Name:        "vitals-within-guard",
					Description: "model high risk, systolic < 140, diastolic <= 90, blood sugar < 8, heart rate < 100",
					Label:       models.MediumRisk,
					WhenModel:   []models.Label{models.HighRisk},
					Conditions: []Condition{
						cond("systolic_mmhg", OpLT, 140),
						cond("diastolic_mmhg", OpLTE, 90),
						cond("blood_sugar", OpLT, 8),
						cond("heart_rate_bpm", OpLT, 100),
					},
				},
			},
		},
		{
			Name:        MaternalPassthrough,
			Subject:     models.SubjectMaternal,
			Description: "model prediction only",
		},
	}
}
