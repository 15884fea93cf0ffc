package models

import (
	"errors"
	"fmt"
)

type Subject string

const (
	SubjectChild    Subject = "child"
	SubjectMaternal Subject = "maternal"
)

type Source string

const (
	SourceModel        Source = "model"
	SourceRuleOverride Source = "rule_override"
)

// Observation is a single submitted form. Rules address its fields by the
// same names used on the wire.
type Observation interface {
	Subject() Subject
	Field(name string) (float64, bool)
}

type ChildObservation struct {
	Gender                 int     `json:"gender" jsonschema:"0 = male, 1 = female"`
	AgeMonths              float64 `json:"age_months" jsonschema:"age in months (0-60)"`
	BirthWeightKg          float64 `json:"birth_weight_kg" jsonschema:"birth weight in kg (0.5-5.0)"`
	BirthLengthCm          float64 `json:"birth_length_cm" jsonschema:"birth length in cm (30-60)"`
	CurrentWeightKg        float64 `json:"current_weight_kg" jsonschema:"current weight in kg (1-25)"`
	CurrentLengthCm        float64 `json:"current_length_cm" jsonschema:"current length or height in cm (40-130)"`
	ExclusiveBreastfeeding int     `json:"exclusive_breastfeeding" jsonschema:"1 if exclusively breastfed, else 0"`
}

func (o ChildObservation) Subject() Subject { return SubjectChild }

func (o ChildObservation) Field(name string) (float64, bool) {
	switch name {
	case "gender":
		return float64(o.Gender), true
	case "age_months":
		return o.AgeMonths, true
	case "birth_weight_kg":
		return o.BirthWeightKg, true
	case "birth_length_cm":
		return o.BirthLengthCm, true
	case "current_weight_kg":
		return o.CurrentWeightKg, true
	case "current_length_cm":
		return o.CurrentLengthCm, true
	case "exclusive_breastfeeding":
		return float64(o.ExclusiveBreastfeeding), true
	}
	return 0, false
}

// Temperature is in the unit the deployment's maternal form collects.
type MaternalObservation struct {
	AgeYears      float64 `json:"age_years" jsonschema:"age in years (15-50)"`
	SystolicMmHg  float64 `json:"systolic_mmhg" jsonschema:"systolic blood pressure (80-200)"`
	DiastolicMmHg float64 `json:"diastolic_mmhg" jsonschema:"diastolic blood pressure (50-130)"`
	BloodSugar    float64 `json:"blood_sugar" jsonschema:"blood sugar in mmol/L (1-30)"`
	Temperature   float64 `json:"temperature" jsonschema:"body temperature in the configured form unit"`
	HeartRateBpm  float64 `json:"heart_rate_bpm" jsonschema:"heart rate in bpm (50-200)"`
}

func (o MaternalObservation) Subject() Subject { return SubjectMaternal }

func (o MaternalObservation) Field(name string) (float64, bool) {
	switch name {
	case "age_years":
		return o.AgeYears, true
	case "systolic_mmhg":
		return o.SystolicMmHg, true
	case "diastolic_mmhg":
		return o.DiastolicMmHg, true
	case "blood_sugar":
		return o.BloodSugar, true
	case "temperature":
		return o.Temperature, true
	case "heart_rate_bpm":
		return o.HeartRateBpm, true
	}
	return 0, false
}

// FieldNames lists the addressable fields of a subject's observation.
func FieldNames(subject Subject) []string {
	switch subject {
	case SubjectChild:
		return []string{
			"gender", "age_months", "birth_weight_kg", "birth_length_cm",
			"current_weight_kg", "current_length_cm", "exclusive_breastfeeding",
		}
	case SubjectMaternal:
		return []string{
			"age_years", "systolic_mmhg", "diastolic_mmhg", "blood_sugar",
			"temperature", "heart_rate_bpm",
		}
	}
	return nil
}

// Input message

type DecisionRequest struct {
	RequestID string               `json:"request_id"`
	Subject   Subject              `json:"subject"`
	RuleSet   string               `json:"rule_set,omitempty"`
	Child     *ChildObservation    `json:"child,omitempty"`
	Maternal  *MaternalObservation `json:"maternal,omitempty"`
}

// Observation returns the payload that matches the declared subject.
func (r DecisionRequest) Observation() (Observation, error) {
	switch r.Subject {
	case SubjectChild:
		if r.Child == nil {
			return nil, NewInvalidInputError("child")
		}
		return *r.Child, nil
	case SubjectMaternal:
		if r.Maternal == nil {
			return nil, NewInvalidInputError("maternal")
		}
		return *r.Maternal, nil
	default:
		return nil, fmt.Errorf("%w: unknown subject %q", ErrInvalidInput, r.Subject)
	}
}

// OverlayRequest runs only the rule overlay against a model label the caller
// already has.
type OverlayRequest struct {
	DecisionRequest
	ModelLabel int `json:"model_label"`
}

type DecisionResult struct {
	RequestID  string  `json:"request_id"`
	Subject    Subject `json:"subject"`
	RuleSet    string  `json:"rule_set"`
	ModelLabel Label   `json:"model_label"`
	FinalLabel Label   `json:"final_label"`
	LabelName  string  `json:"label_name"`
	Source     Source  `json:"source"`
	Rule       string  `json:"rule,omitempty"`
	Rationale  string  `json:"rationale"`
}

// DecisionOutcome is one processed request as published on the result
// stream and written by the batch CLI. Exactly one of Result and Error is set.
type DecisionOutcome struct {
	RequestID string          `json:"request_id"`
	Result    *DecisionResult `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	Fields    []string        `json:"fields,omitempty"`
}

func NewDecisionOutcome(requestID string, result DecisionResult, err error) DecisionOutcome {
	if err == nil {
		if result.RequestID != "" {
			requestID = result.RequestID
		}
		return DecisionOutcome{RequestID: requestID, Result: &result}
	}

	outcome := DecisionOutcome{RequestID: requestID, Error: err.Error()}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		outcome.Fields = invalid.Fields
	}
	return outcome
}
