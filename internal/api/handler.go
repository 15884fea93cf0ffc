package api

import (
	"errors"
	"net/http"

	"github.com/aretha12/MoGrow/internal/api/middleware"
	"github.com/aretha12/MoGrow/internal/executor"
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/recommendation"
	"github.com/aretha12/MoGrow/internal/rules"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

const Version = "1.0.0"

type Handler struct {
	executor        *executor.Executor
	overlayExecutor *executor.OverlayExecutor
	registry        *rules.Registry
	resolver        *executor.RuleSetResolver
	logger          *zerolog.Logger
}

func NewHandler(
	executor *executor.Executor,
	overlayExecutor *executor.OverlayExecutor,
	registry *rules.Registry,
	resolver *executor.RuleSetResolver,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		executor:        executor,
		overlayExecutor: overlayExecutor,
		registry:        registry,
		resolver:        resolver,
		logger:          logger,
	}
}

// POST /api/v1/decide
// Body: DecisionRequest
// Returns: DecisionResponse
func (h *Handler) Decide(req *restful.Request, resp *restful.Response) {
	var decisionRequest models.DecisionRequest
	if err := req.ReadEntity(&decisionRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	result, err := h.executor.Decide(ctx, decisionRequest)
	if err != nil {
		middleware.HandleError(resp, err, StatusFor(err))
		return
	}

	advice, err := recommendation.For(result.Subject, result.FinalLabel)
	if err != nil {
		middleware.HandleError(resp, err, StatusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, DecisionResponse{
		Decision:       result,
		Recommendation: advice,
		ModelAccuracy:  h.executor.Accuracy(result.Subject),
	})
}

// POST /api/v1/overlay
// Body: OverlayRequest
// Returns: DecisionResult
func (h *Handler) Overlay(req *restful.Request, resp *restful.Response) {
	var overlayRequest models.OverlayRequest
	if err := req.ReadEntity(&overlayRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.overlayExecutor.Overlay(overlayRequest)
	if err != nil {
		middleware.HandleError(resp, err, StatusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/rule-sets
func (h *Handler) RuleSets(req *restful.Request, resp *restful.Response) {
	subject := models.Subject(req.QueryParameter("subject"))

	views := []RuleSetView{}
	for _, set := range h.registry.List() {
		if subject != "" && set.Subject != subject {
			continue
		}
		views = append(views, toView(set, h.resolver.Default(set.Subject) == set.Name))
	}

	resp.WriteHeaderAndEntity(http.StatusOK, views)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

// StatusFor maps executor errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrRuleSetMismatch):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrRuleSetNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnrecognizedLabel):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func toView(set rules.RuleSet, isDefault bool) RuleSetView {
	view := RuleSetView{
		Name:        set.Name,
		Subject:     string(set.Subject),
		Description: set.Description,
		Default:     isDefault,
		Rules:       make([]RuleView, 0, len(set.Rules)),
	}
	for _, rule := range set.Rules {
		rv := RuleView{
			Name:        rule.Name,
			Description: rule.Description,
			Label:       models.LabelName(set.Subject, rule.Label),
		}
		for _, when := range rule.WhenModel {
			rv.WhenModel = append(rv.WhenModel, models.LabelName(set.Subject, when))
		}
		for _, c := range rule.Conditions {
			rv.Conditions = append(rv.Conditions, c.String())
		}
		view.Rules = append(view.Rules, rv)
	}
	return view
}
