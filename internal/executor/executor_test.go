package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/aretha12/MoGrow/internal/executor/mocks"
	"github.com/aretha12/MoGrow/internal/features"
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/rules"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testResolver(t *testing.T) *RuleSetResolver {
	t.Helper()
	registry, err := rules.NewRegistry(rules.Builtin()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewRuleSetResolver(registry, map[models.Subject]string{
		models.SubjectChild:    rules.ChildOverrideNormal,
		models.SubjectMaternal: rules.MaternalDowngrade,
	})
}

func childRequest(age, length, weight float64) models.DecisionRequest {
	return models.DecisionRequest{
		RequestID: "req-child",
		Subject:   models.SubjectChild,
		Child: &models.ChildObservation{
			Gender:                 1,
			AgeMonths:              age,
			BirthWeightKg:          3.1,
			BirthLengthCm:          49,
			CurrentWeightKg:        weight,
			CurrentLengthCm:        length,
			ExclusiveBreastfeeding: 1,
		},
	}
}

func maternalRequest(systolic, temperature float64) models.DecisionRequest {
	return models.DecisionRequest{
		RequestID: "req-maternal",
		Subject:   models.SubjectMaternal,
		Maternal: &models.MaternalObservation{
			AgeYears:      29,
			SystolicMmHg:  systolic,
			DiastolicMmHg: 85,
			BloodSugar:    6,
			Temperature:   temperature,
			HeartRateBpm:  90,
		},
	}
}

type fixture struct {
	scaler     *mocks.MockScaler
	classifier *mocks.MockClassifier
	recorder   *mocks.MockRecorder
	executor   *Executor
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		scaler:     mocks.NewMockScaler(ctrl),
		classifier: mocks.NewMockClassifier(ctrl),
		recorder:   mocks.NewMockRecorder(ctrl),
	}
	normalizer := features.NewNormalizer(features.Celsius)
	pipelines := []Pipeline{
		{Subject: models.SubjectChild, Normalizer: normalizer, Scaler: f.scaler, Classifier: f.classifier, Accuracy: 0.865},
		{Subject: models.SubjectMaternal, Normalizer: normalizer, Scaler: f.scaler, Classifier: f.classifier, Accuracy: 0.8473},
	}
	f.executor = NewExecutor(pipelines, testResolver(t), f.recorder, testLogger())
	return f
}

func TestExecutor_Decide(t *testing.T) {
	tests := []struct {
		name         string
		req          models.DecisionRequest
		wantVector   []float64
		modelLabel   int
		expectLabel  models.Label
		expectSource models.Source
		expectRule   string
		expectSet    string
	}{
		{
			name:         "child v1 overrides stunted prediction",
			req:          childRequest(24, 88, 12),
			wantVector:   []float64{1, 24, 3.1, 49, 12, 88, 1},
			modelLabel:   1,
			expectLabel:  models.NotStunted,
			expectSource: models.SourceRuleOverride,
			expectRule:   "growth-on-track",
			expectSet:    rules.ChildOverrideNormal,
		},
		{
			name:         "child v1 keeps prediction below threshold",
			req:          childRequest(24, 74, 12),
			wantVector:   []float64{1, 24, 3.1, 49, 12, 74, 1},
			modelLabel:   1,
			expectLabel:  models.Stunted,
			expectSource: models.SourceModel,
			expectSet:    rules.ChildOverrideNormal,
		},
		{
			name: "explicit child v2 forces stunted",
			req: func() models.DecisionRequest {
				r := childRequest(40, 85, 14)
				r.RuleSet = rules.ChildTwoSided
				return r
			}(),
			wantVector:   []float64{1, 40, 3.1, 49, 14, 85, 1},
			modelLabel:   0,
			expectLabel:  models.Stunted,
			expectSource: models.SourceRuleOverride,
			expectRule:   "definitely-stunted-36m",
			expectSet:    rules.ChildTwoSided,
		},
		{
			name:         "maternal high risk downgraded, celsius converted",
			req:          maternalRequest(130, 36.5),
			wantVector:   []float64{29, 130, 85, 6, 97.7, 90},
			modelLabel:   2,
			expectLabel:  models.MediumRisk,
			expectSource: models.SourceRuleOverride,
			expectRule:   "vitals-within-guard",
			expectSet:    rules.MaternalDowngrade,
		},
		{
			name:         "maternal high risk kept with raised systolic",
			req:          maternalRequest(150, 37),
			wantVector:   []float64{29, 150, 85, 6, 98.6, 90},
			modelLabel:   2,
			expectLabel:  models.HighRisk,
			expectSource: models.SourceModel,
			expectSet:    rules.MaternalDowngrade,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			scaled := []float64{0.1, 0.2}
			gomock.InOrder(
				f.scaler.EXPECT().Transform(tt.wantVector).Return(scaled, nil),
				f.classifier.EXPECT().Predict(scaled).Return(tt.modelLabel, nil),
			)
			f.recorder.EXPECT().ObserveDecision(gomock.Any())

			result, err := f.executor.Decide(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.RequestID != tt.req.RequestID {
				t.Errorf("expected request ID %s, got %s", tt.req.RequestID, result.RequestID)
			}
			if result.FinalLabel != tt.expectLabel {
				t.Errorf("expected label %v, got %v", tt.expectLabel, result.FinalLabel)
			}
			if result.ModelLabel != models.Label(tt.modelLabel) {
				t.Errorf("expected model label %d, got %v", tt.modelLabel, result.ModelLabel)
			}
			if result.Source != tt.expectSource {
				t.Errorf("expected source %s, got %s", tt.expectSource, result.Source)
			}
			if result.Rule != tt.expectRule {
				t.Errorf("expected rule %q, got %q", tt.expectRule, result.Rule)
			}
			if result.RuleSet != tt.expectSet {
				t.Errorf("expected rule set %s, got %s", tt.expectSet, result.RuleSet)
			}
			if result.Rationale == "" {
				t.Error("expected a rationale")
			}
		})
	}
}

func TestExecutor_Decide_InvalidInputNeverReachesScaler(t *testing.T) {
	tests := []struct {
		name         string
		req          models.DecisionRequest
		expectFields []string
	}{
		{
			name:         "age above range",
			req:          childRequest(61, 88, 12),
			expectFields: []string{"age_months"},
		},
		{
			name:         "length and weight below range",
			req:          childRequest(24, 39.9, 0.5),
			expectFields: []string{"current_weight_kg", "current_length_cm"},
		},
		{
			name:         "temperature outside celsius range",
			req:          maternalRequest(120, 98.6),
			expectFields: []string{"temperature"},
		},
		{
			name:         "missing payload",
			req:          models.DecisionRequest{Subject: models.SubjectChild},
			expectFields: []string{"child"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			// no scaler or classifier expectations: any call fails the test
			f.recorder.EXPECT().ObserveFailure(tt.req.Subject, gomock.Any())

			_, err := f.executor.Decide(context.Background(), tt.req)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}

			var invalid *models.InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %T", err)
			}
			if len(invalid.Fields) != len(tt.expectFields) {
				t.Fatalf("expected fields %v, got %v", tt.expectFields, invalid.Fields)
			}
			for i := range tt.expectFields {
				if invalid.Fields[i] != tt.expectFields[i] {
					t.Errorf("expected fields %v, got %v", tt.expectFields, invalid.Fields)
				}
			}
		})
	}
}

func TestExecutor_Decide_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DecisionRequest
		setup     func(f *fixture)
		expectErr error
	}{
		{
			name: "scaler failure",
			req:  childRequest(24, 88, 12),
			setup: func(f *fixture) {
				f.scaler.EXPECT().Transform(gomock.Any()).Return(nil, errors.New("length mismatch"))
			},
			expectErr: models.ErrModelUnavailable,
		},
		{
			name: "classifier failure",
			req:  childRequest(24, 88, 12),
			setup: func(f *fixture) {
				f.scaler.EXPECT().Transform(gomock.Any()).Return([]float64{0}, nil)
				f.classifier.EXPECT().Predict(gomock.Any()).Return(0, errors.New("model not loaded"))
			},
			expectErr: models.ErrModelUnavailable,
		},
		{
			name: "unrecognized child label",
			req:  childRequest(24, 88, 12),
			setup: func(f *fixture) {
				f.scaler.EXPECT().Transform(gomock.Any()).Return([]float64{0}, nil)
				f.classifier.EXPECT().Predict(gomock.Any()).Return(2, nil)
			},
			expectErr: models.ErrUnrecognizedLabel,
		},
		{
			name: "unrecognized maternal label",
			req:  maternalRequest(120, 36.6),
			setup: func(f *fixture) {
				f.scaler.EXPECT().Transform(gomock.Any()).Return([]float64{0}, nil)
				f.classifier.EXPECT().Predict(gomock.Any()).Return(-1, nil)
			},
			expectErr: models.ErrUnrecognizedLabel,
		},
		{
			name: "unknown rule set",
			req: func() models.DecisionRequest {
				r := childRequest(24, 88, 12)
				r.RuleSet = "child-v9"
				return r
			}(),
			expectErr: models.ErrRuleSetNotFound,
		},
		{
			name: "maternal rule set on child",
			req: func() models.DecisionRequest {
				r := childRequest(24, 88, 12)
				r.RuleSet = rules.MaternalDowngrade
				return r
			}(),
			expectErr: models.ErrRuleSetMismatch,
		},
		{
			name:      "unknown subject",
			req:       models.DecisionRequest{Subject: "adult"},
			expectErr: models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}
			f.recorder.EXPECT().ObserveFailure(tt.req.Subject, gomock.Any())

			_, err := f.executor.Decide(context.Background(), tt.req)
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("expected error %v, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestExecutor_Decide_ContextCancellation(t *testing.T) {
	f := newFixture(t)
	f.recorder.EXPECT().ObserveFailure(models.SubjectChild, gomock.Any())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.executor.Decide(ctx, childRequest(24, 88, 12))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestExecutor_Decide_GeneratesRequestID(t *testing.T) {
	f := newFixture(t)
	f.scaler.EXPECT().Transform(gomock.Any()).Return([]float64{0}, nil)
	f.classifier.EXPECT().Predict(gomock.Any()).Return(0, nil)
	f.recorder.EXPECT().ObserveDecision(gomock.Any())

	req := childRequest(6, 65, 7)
	req.RequestID = ""

	result, err := f.executor.Decide(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RequestID == "" {
		t.Error("expected a generated request ID")
	}
}

func TestExecutor_Decide_Deterministic(t *testing.T) {
	f := newFixture(t)
	f.scaler.EXPECT().Transform(gomock.Any()).Return([]float64{0}, nil).Times(3)
	f.classifier.EXPECT().Predict(gomock.Any()).Return(1, nil).Times(3)
	f.recorder.EXPECT().ObserveDecision(gomock.Any()).Times(3)

	first, err := f.executor.Decide(context.Background(), childRequest(30, 80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		again, err := f.executor.Decide(context.Background(), childRequest(30, 80, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Errorf("expected identical results, got %+v and %+v", first, again)
		}
	}
}

func TestExecutor_Accuracy(t *testing.T) {
	f := newFixture(t)

	if got := f.executor.Accuracy(models.SubjectChild); got != 0.865 {
		t.Errorf("expected child accuracy 0.865, got %v", got)
	}
	if got := f.executor.Accuracy(models.SubjectMaternal); got != 0.8473 {
		t.Errorf("expected maternal accuracy 0.8473, got %v", got)
	}
	if got := f.executor.Accuracy("adult"); got != 0 {
		t.Errorf("expected 0 for unknown subject, got %v", got)
	}
}

func TestRuleSetResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockRuleSetProvider(ctrl)

	resolver := NewRuleSetResolver(provider, map[models.Subject]string{
		models.SubjectChild: "child-default",
	})

	provider.EXPECT().Get("child-default").Return(rules.RuleSet{Name: "child-default", Subject: models.SubjectChild}, nil)
	set, err := resolver.Resolve(models.SubjectChild, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Name != "child-default" {
		t.Errorf("expected default rule set, got %s", set.Name)
	}

	if _, err := resolver.Resolve(models.SubjectMaternal, ""); !errors.Is(err, models.ErrRuleSetNotFound) {
		t.Errorf("expected ErrRuleSetNotFound without default, got %v", err)
	}
}

func TestIsClientError(t *testing.T) {
	if !IsClientError(models.NewInvalidInputError("gender")) {
		t.Error("invalid input should be a client error")
	}
	if !IsClientError(models.ErrRuleSetMismatch) {
		t.Error("rule set mismatch should be a client error")
	}
	if IsClientError(models.ErrModelUnavailable) {
		t.Error("model unavailable should not be a client error")
	}
}
