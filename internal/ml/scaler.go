package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aretha12/MoGrow/internal/models"
)

type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// StandardScaler applies (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NewStandardScaler copies mean and scale; the caller's slices are left as is.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	s := &StandardScaler{
		Mean:  append([]float64(nil), mean...),
		Scale: append([]float64(nil), scale...),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("standard scaler: empty mean")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("standard scaler: mean has %d columns, scale has %d", len(s.Mean), len(s.Scale))
	}
	// constant columns are fitted with scale 0; divide by 1 instead
	for i, v := range s.Scale {
		if v == 0 {
			s.Scale[i] = 1
		}
	}
	return nil
}

func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.Mean) {
		return nil, fmt.Errorf("standard scaler: expected %d features, got %d", len(s.Mean), len(vector))
	}
	out := make([]float64, len(vector))
	for i, x := range vector {
		out[i] = (x - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// MinMaxScaler maps each column from [DataMin, DataMax] onto FeatureRange.
type MinMaxScaler struct {
	DataMin      []float64  `json:"data_min"`
	DataMax      []float64  `json:"data_max"`
	FeatureRange [2]float64 `json:"feature_range"`
}

func NewMinMaxScaler(dataMin, dataMax []float64) (*MinMaxScaler, error) {
	s := &MinMaxScaler{
		DataMin:      append([]float64(nil), dataMin...),
		DataMax:      append([]float64(nil), dataMax...),
		FeatureRange: [2]float64{0, 1},
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinMaxScaler) validate() error {
	if len(s.DataMin) == 0 {
		return errors.New("minmax scaler: empty data_min")
	}
	if len(s.DataMin) != len(s.DataMax) {
		return fmt.Errorf("minmax scaler: data_min has %d columns, data_max has %d", len(s.DataMin), len(s.DataMax))
	}
	if s.FeatureRange == [2]float64{} {
		s.FeatureRange = [2]float64{0, 1}
	}
	if s.FeatureRange[0] >= s.FeatureRange[1] {
		return fmt.Errorf("minmax scaler: invalid feature range %v", s.FeatureRange)
	}
	return nil
}

func (s *MinMaxScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.DataMin) {
		return nil, fmt.Errorf("minmax scaler: expected %d features, got %d", len(s.DataMin), len(vector))
	}
	lo, hi := s.FeatureRange[0], s.FeatureRange[1]
	out := make([]float64, len(vector))
	for i, x := range vector {
		span := s.DataMax[i] - s.DataMin[i]
		if span == 0 {
			span = 1
		}
		out[i] = (x-s.DataMin[i])/span*(hi-lo) + lo
	}
	return out, nil
}

func LoadScaler(kind, path string) (Scaler, error) {
	scaler, err := loadScaler(kind, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s scaler %s: %v", models.ErrModelUnavailable, kind, path, err)
	}
	return scaler, nil
}

func loadScaler(kind, path string) (Scaler, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "standard":
		var s StandardScaler
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return &s, nil
	case "minmax":
		var s MinMaxScaler
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unsupported scaler type %q", kind)
	}
}
