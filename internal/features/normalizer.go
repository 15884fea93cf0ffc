package features

import (
	"fmt"
	"math"

	"github.com/aretha12/MoGrow/internal/models"
)

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

func ParseTemperatureUnit(value string) (TemperatureUnit, error) {
	switch TemperatureUnit(value) {
	case Celsius, Fahrenheit:
		return TemperatureUnit(value), nil
	case "c", "C":
		return Celsius, nil
	case "f", "F":
		return Fahrenheit, nil
	}
	return "", fmt.Errorf("unsupported temperature unit %q", value)
}

// CelsiusToFahrenheit converts and rounds to two decimals, so 36.5 becomes
// exactly 97.7.
func CelsiusToFahrenheit(c float64) float64 {
	f := c*9/5 + 32
	return math.Round(f*100) / 100
}

type bound struct {
	field    string
	min, max float64
}

func (b bound) check(value float64) bool {
	return !math.IsNaN(value) && value >= b.min && value <= b.max
}

func checkCategory(value int) bool {
	return value == 0 || value == 1
}

// ChildFeatureNames is the column order the child scaler and model were fitted on.
var ChildFeatureNames = []string{
	"gender", "age_months", "birth_weight", "birth_length",
	"current_weight", "current_length", "breastfeeding",
}

// MaternalFeatureNames is the column order the maternal scaler and model were fitted on.
var MaternalFeatureNames = []string{
	"age", "systolic", "diastolic", "blood_sugar", "temperature_f", "heart_rate",
}

var childBounds = []bound{
	{field: "age_months", min: 0, max: 60},
	{field: "birth_weight_kg", min: 0.5, max: 5.0},
	{field: "birth_length_cm", min: 30, max: 60},
	{field: "current_weight_kg", min: 1, max: 25},
	{field: "current_length_cm", min: 40, max: 130},
}

type ChildNormalizer struct{}

func NewChildNormalizer() *ChildNormalizer {
	return &ChildNormalizer{}
}

func (n *ChildNormalizer) Validate(obs models.ChildObservation) error {
	var invalid []string
	if !checkCategory(obs.Gender) {
		invalid = append(invalid, "gender")
	}
	for _, b := range childBounds {
		value, _ := obs.Field(b.field)
		if !b.check(value) {
			invalid = append(invalid, b.field)
		}
	}
	if !checkCategory(obs.ExclusiveBreastfeeding) {
		invalid = append(invalid, "exclusive_breastfeeding")
	}
	if len(invalid) > 0 {
		return models.NewInvalidInputError(invalid...)
	}
	return nil
}

func (n *ChildNormalizer) Normalize(obs models.ChildObservation) ([]float64, error) {
	if err := n.Validate(obs); err != nil {
		return nil, err
	}
	return []float64{
		float64(obs.Gender),
		obs.AgeMonths,
		obs.BirthWeightKg,
		obs.BirthLengthCm,
		obs.CurrentWeightKg,
		obs.CurrentLengthCm,
		float64(obs.ExclusiveBreastfeeding),
	}, nil
}

var maternalBounds = []bound{
	{field: "age_years", min: 15, max: 50},
	{field: "systolic_mmhg", min: 80, max: 200},
	{field: "diastolic_mmhg", min: 50, max: 130},
	{field: "blood_sugar", min: 1, max: 30},
	{field: "heart_rate_bpm", min: 50, max: 200},
}

var temperatureBounds = map[TemperatureUnit]bound{
	Celsius:    {field: "temperature", min: 30, max: 45},
	Fahrenheit: {field: "temperature", min: 86, max: 113},
}

// MaternalNormalizer knows the unit its form collects temperature in and
// converts to Fahrenheit at most once.
type MaternalNormalizer struct {
	Unit TemperatureUnit
}

func NewMaternalNormalizer(unit TemperatureUnit) *MaternalNormalizer {
	if unit == "" {
		unit = Celsius
	}
	return &MaternalNormalizer{Unit: unit}
}

func (n *MaternalNormalizer) Validate(obs models.MaternalObservation) error {
	var invalid []string
	for _, b := range maternalBounds {
		value, _ := obs.Field(b.field)
		if !b.check(value) {
			invalid = append(invalid, b.field)
		}
	}
	tb, ok := temperatureBounds[n.Unit]
	if !ok || !tb.check(obs.Temperature) {
		invalid = append(invalid, "temperature")
	}
	if len(invalid) > 0 {
		return models.NewInvalidInputError(invalid...)
	}
	return nil
}

func (n *MaternalNormalizer) Normalize(obs models.MaternalObservation) ([]float64, error) {
	if err := n.Validate(obs); err != nil {
		return nil, err
	}
	tempF := obs.Temperature
	if n.Unit == Celsius {
		tempF = CelsiusToFahrenheit(obs.Temperature)
	}
	return []float64{
		obs.AgeYears,
		obs.SystolicMmHg,
		obs.DiastolicMmHg,
		obs.BloodSugar,
		tempF,
		obs.HeartRateBpm,
	}, nil
}

// Normalizer turns any supported observation into its model vector.
type Normalizer struct {
	Child    *ChildNormalizer
	Maternal *MaternalNormalizer
}

func NewNormalizer(unit TemperatureUnit) *Normalizer {
	return &Normalizer{
		Child:    NewChildNormalizer(),
		Maternal: NewMaternalNormalizer(unit),
	}
}

func (n *Normalizer) Validate(obs models.Observation) error {
	switch o := obs.(type) {
	case models.ChildObservation:
		return n.Child.Validate(o)
	case models.MaternalObservation:
		return n.Maternal.Validate(o)
	}
	return fmt.Errorf("%w: unsupported observation %T", models.ErrInvalidInput, obs)
}

func (n *Normalizer) Normalize(obs models.Observation) ([]float64, error) {
	switch o := obs.(type) {
	case models.ChildObservation:
		return n.Child.Normalize(o)
	case models.MaternalObservation:
		return n.Maternal.Normalize(o)
	}
	return nil, fmt.Errorf("%w: unsupported observation %T", models.ErrInvalidInput, obs)
}
