package features

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aretha12/MoGrow/internal/models"
)

func validChild() models.ChildObservation {
	return models.ChildObservation{
		Gender:                 1,
		AgeMonths:              24,
		BirthWeightKg:          3.1,
		BirthLengthCm:          49,
		CurrentWeightKg:        11,
		CurrentLengthCm:        86,
		ExclusiveBreastfeeding: 1,
	}
}

func validMaternal() models.MaternalObservation {
	return models.MaternalObservation{
		AgeYears:      28,
		SystolicMmHg:  120,
		DiastolicMmHg: 80,
		BloodSugar:    7,
		Temperature:   36.5,
		HeartRateBpm:  100,
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		celsius float64
		want    float64
	}{
		{36.5, 97.7},
		{37, 98.6},
		{0, 32},
		{40, 104},
		{30, 86},
	}

	for _, tt := range tests {
		if got := CelsiusToFahrenheit(tt.celsius); got != tt.want {
			t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", tt.celsius, got, tt.want)
		}
	}
}

func TestChildNormalizer_VectorOrder(t *testing.T) {
	got, err := NewChildNormalizer().Normalize(validChild())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{1, 24, 3.1, 49, 11, 86, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("vector = %v, want %v", got, want)
	}
	if len(got) != len(ChildFeatureNames) {
		t.Errorf("vector length %d does not match %d feature names", len(got), len(ChildFeatureNames))
	}
}

func TestChildNormalizer_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(o *models.ChildObservation)
		wantFields []string
	}{
		{"age over 60 months", func(o *models.ChildObservation) { o.AgeMonths = 70 }, []string{"age_months"}},
		{"negative age", func(o *models.ChildObservation) { o.AgeMonths = -1 }, []string{"age_months"}},
		{"gender not categorical", func(o *models.ChildObservation) { o.Gender = 2 }, []string{"gender"}},
		{"breastfeeding not categorical", func(o *models.ChildObservation) { o.ExclusiveBreastfeeding = -1 }, []string{"exclusive_breastfeeding"}},
		{"birth weight too low", func(o *models.ChildObservation) { o.BirthWeightKg = 0.4 }, []string{"birth_weight_kg"}},
		{"length and weight", func(o *models.ChildObservation) {
			o.CurrentLengthCm = 131
			o.CurrentWeightKg = 0
		}, []string{"current_weight_kg", "current_length_cm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := validChild()
			tt.mutate(&obs)

			_, err := NewChildNormalizer().Normalize(obs)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var invalid *models.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %T", err)
			}
			if !reflect.DeepEqual(invalid.Fields, tt.wantFields) {
				t.Errorf("fields = %v, want %v", invalid.Fields, tt.wantFields)
			}
		})
	}
}

func TestChildNormalizer_BoundsAreInclusive(t *testing.T) {
	obs := models.ChildObservation{
		Gender:                 0,
		AgeMonths:              60,
		BirthWeightKg:          0.5,
		BirthLengthCm:          60,
		CurrentWeightKg:        1,
		CurrentLengthCm:        130,
		ExclusiveBreastfeeding: 0,
	}
	if _, err := NewChildNormalizer().Normalize(obs); err != nil {
		t.Errorf("boundary values should be accepted, got %v", err)
	}
}

func TestMaternalNormalizer_ConvertsCelsiusOnce(t *testing.T) {
	got, err := NewMaternalNormalizer(Celsius).Normalize(validMaternal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{28, 120, 80, 7, 97.7, 100}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("vector = %v, want %v", got, want)
	}
}

func TestMaternalNormalizer_FahrenheitPassThrough(t *testing.T) {
	obs := validMaternal()
	obs.Temperature = 98.6

	got, err := NewMaternalNormalizer(Fahrenheit).Normalize(obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[4] != 98.6 {
		t.Errorf("temperature = %v, want 98.6 unchanged", got[4])
	}
}

func TestMaternalNormalizer_TemperatureBoundsFollowUnit(t *testing.T) {
	obs := validMaternal()
	obs.Temperature = 98.6

	_, err := NewMaternalNormalizer(Celsius).Normalize(obs)
	var invalid *models.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("98.6 is out of the Celsius range, expected InvalidInputError, got %v", err)
	}
	if !reflect.DeepEqual(invalid.Fields, []string{"temperature"}) {
		t.Errorf("fields = %v, want [temperature]", invalid.Fields)
	}
}

func TestMaternalNormalizer_ListsEveryOffendingField(t *testing.T) {
	obs := validMaternal()
	obs.AgeYears = 14
	obs.SystolicMmHg = 201
	obs.HeartRateBpm = 49

	_, err := NewMaternalNormalizer(Celsius).Normalize(obs)
	var invalid *models.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	want := []string{"age_years", "systolic_mmhg", "heart_rate_bpm"}
	if !reflect.DeepEqual(invalid.Fields, want) {
		t.Errorf("fields = %v, want %v", invalid.Fields, want)
	}
}

func TestNormalizer_Dispatch(t *testing.T) {
	n := NewNormalizer(Celsius)

	child, err := n.Normalize(validChild())
	if err != nil || len(child) != 7 {
		t.Errorf("child: got %v, %v", child, err)
	}
	maternal, err := n.Normalize(validMaternal())
	if err != nil || len(maternal) != 6 {
		t.Errorf("maternal: got %v, %v", maternal, err)
	}
}

func TestParseTemperatureUnit(t *testing.T) {
	if unit, err := ParseTemperatureUnit("F"); err != nil || unit != Fahrenheit {
		t.Errorf("F: got %v, %v", unit, err)
	}
	if _, err := ParseTemperatureUnit("kelvin"); err == nil {
		t.Error("expected error for kelvin")
	}
}
