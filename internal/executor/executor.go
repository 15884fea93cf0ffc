package executor

//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/rules"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Normalizer validates an observation and produces its model vector
type Normalizer interface {
	Normalize(obs models.Observation) ([]float64, error)
}

// Scaler applies the fitted feature scaling
type Scaler interface {
	Transform(vector []float64) ([]float64, error)
}

// Classifier predicts a raw class label from a scaled vector
type Classifier interface {
	Predict(features []float64) (int, error)
}

// RuleSetProvider looks up rule sets by name
type RuleSetProvider interface {
	Get(name string) (rules.RuleSet, error)
}

// Recorder receives decision outcomes for metrics
type Recorder interface {
	ObserveDecision(result models.DecisionResult)
	ObserveFailure(subject models.Subject, err error)
}

// Pipeline is everything needed to score one subject. It is built once at
// startup and only read afterwards.
type Pipeline struct {
	Subject    models.Subject
	Normalizer Normalizer
	Scaler     Scaler
	Classifier Classifier
	Accuracy   float64
}

// RuleSetResolver picks the rule set a request is evaluated under.
type RuleSetResolver struct {
	ruleSets RuleSetProvider
	defaults map[models.Subject]string
}

func NewRuleSetResolver(ruleSets RuleSetProvider, defaults map[models.Subject]string) *RuleSetResolver {
	return &RuleSetResolver{
		ruleSets: ruleSets,
		defaults: defaults,
	}
}

// Resolve returns the named rule set, or the subject's default when name is
// empty. The set must be written for the same subject.
func (r *RuleSetResolver) Resolve(subject models.Subject, name string) (rules.RuleSet, error) {
	if name == "" {
		name = r.defaults[subject]
	}
	if name == "" {
		return rules.RuleSet{}, fmt.Errorf("%w: no default for subject %q", models.ErrRuleSetNotFound, subject)
	}

	set, err := r.ruleSets.Get(name)
	if err != nil {
		return rules.RuleSet{}, err
	}
	if set.Subject != subject {
		return rules.RuleSet{}, fmt.Errorf("%w: %q is a %s rule set, request is %s",
			models.ErrRuleSetMismatch, set.Name, set.Subject, subject)
	}
	return set, nil
}

func (r *RuleSetResolver) Default(subject models.Subject) string {
	return r.defaults[subject]
}

type Executor struct {
	pipelines map[models.Subject]Pipeline
	resolver  *RuleSetResolver
	recorder  Recorder
	logger    *zerolog.Logger
}

func NewExecutor(
	pipelines []Pipeline,
	resolver *RuleSetResolver,
	recorder Recorder,
	logger *zerolog.Logger,
) *Executor {
	bySubject := make(map[models.Subject]Pipeline, len(pipelines))
	for _, p := range pipelines {
		bySubject[p.Subject] = p
	}
	return &Executor{
		pipelines: bySubject,
		resolver:  resolver,
		recorder:  recorder,
		logger:    logger,
	}
}

// Accuracy reports the offline accuracy of the subject's model, or 0 when no
// pipeline is configured.
func (e *Executor) Accuracy(subject models.Subject) float64 {
	return e.pipelines[subject].Accuracy
}

// Decide runs normalize, scale, predict and the rule overlay for one request.
// Nothing reaches the scaler unless every field passed validation.
func (e *Executor) Decide(ctx context.Context, req models.DecisionRequest) (models.DecisionResult, error) {
	result, err := e.decide(ctx, req)
	if err != nil {
		event := e.logger.Error()
		if IsClientError(err) {
			event = e.logger.Warn()
		}
		event.Err(err).
			Str("requestID", req.RequestID).
			Str("subject", string(req.Subject)).
			Msg("decision rejected")
		if e.recorder != nil {
			e.recorder.ObserveFailure(req.Subject, err)
		}
		return result, err
	}

	e.logger.Info().
		Str("requestID", result.RequestID).
		Str("subject", string(result.Subject)).
		Str("ruleSet", result.RuleSet).
		Str("label", result.LabelName).
		Str("source", string(result.Source)).
		Msg("decision complete")
	if e.recorder != nil {
		e.recorder.ObserveDecision(result)
	}
	return result, nil
}

func (e *Executor) decide(ctx context.Context, req models.DecisionRequest) (models.DecisionResult, error) {
	result := models.DecisionResult{
		RequestID: requestID(req.RequestID),
		Subject:   req.Subject,
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	obs, err := req.Observation()
	if err != nil {
		return result, err
	}

	set, err := e.resolver.Resolve(req.Subject, req.RuleSet)
	if err != nil {
		return result, err
	}
	result.RuleSet = set.Name

	pipeline, ok := e.pipelines[req.Subject]
	if !ok {
		return result, fmt.Errorf("%w: no pipeline for subject %q", models.ErrModelUnavailable, req.Subject)
	}

	vector, err := pipeline.Normalizer.Normalize(obs)
	if err != nil {
		return result, err
	}

	scaled, err := pipeline.Scaler.Transform(vector)
	if err != nil {
		return result, fmt.Errorf("%w: scale: %v", models.ErrModelUnavailable, err)
	}

	raw, err := pipeline.Classifier.Predict(scaled)
	if err != nil {
		return result, fmt.Errorf("%w: predict: %v", models.ErrModelUnavailable, err)
	}

	label, err := models.RecognizeLabel(req.Subject, raw)
	if err != nil {
		return result, err
	}

	decided := rules.Evaluate(set, obs, label)
	decided.RequestID = result.RequestID
	return decided, nil
}

func requestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// IsClientError reports whether err was caused by the request rather than
// by the service.
func IsClientError(err error) bool {
	return errors.Is(err, models.ErrInvalidInput) ||
		errors.Is(err, models.ErrRuleSetNotFound) ||
		errors.Is(err, models.ErrRuleSetMismatch)
}
