package executor

//go:generate mockgen -source=overlay_executor.go -destination=mocks/mock_overlay_executor.go -package=mocks

import (
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/rules"
	"github.com/rs/zerolog"
)

// Validator checks an observation without producing a vector
type Validator interface {
	Validate(obs models.Observation) error
}

// OverlayExecutor applies a rule set to a model label the caller already
// has. No model is run.
type OverlayExecutor struct {
	validator Validator
	resolver  *RuleSetResolver
	logger    *zerolog.Logger
}

func NewOverlayExecutor(validator Validator, resolver *RuleSetResolver, logger *zerolog.Logger) *OverlayExecutor {
	return &OverlayExecutor{
		validator: validator,
		resolver:  resolver,
		logger:    logger,
	}
}

func (e *OverlayExecutor) Overlay(req models.OverlayRequest) (models.DecisionResult, error) {
	id := requestID(req.RequestID)
	e.logger.Info().Str("requestID", id).Int("modelLabel", req.ModelLabel).Msg("starting overlay")

	result := models.DecisionResult{
		RequestID: id,
		Subject:   req.Subject,
	}

	obs, err := req.Observation()
	if err != nil {
		return result, err
	}

	set, err := e.resolver.Resolve(req.Subject, req.RuleSet)
	if err != nil {
		e.logger.Error().Err(err).Str("ruleSet", req.RuleSet).Msg("rule set not resolved")
		return result, err
	}
	result.RuleSet = set.Name

	if err := e.validator.Validate(obs); err != nil {
		return result, err
	}

	label, err := models.RecognizeLabel(req.Subject, req.ModelLabel)
	if err != nil {
		return result, err
	}

	result = rules.Evaluate(set, obs, label)
	result.RequestID = id
	e.logger.Info().
		Str("requestID", id).
		Str("label", result.LabelName).
		Str("source", string(result.Source)).
		Msg("overlay complete")
	return result, nil
}
