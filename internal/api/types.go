package api

import (
	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/recommendation"
)

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

type DecisionResponse struct {
	Decision       models.DecisionResult         `json:"decision" description:"Model prediction after the rule overlay"`
	Recommendation recommendation.Recommendation `json:"recommendation" description:"Advice for the final label"`
	ModelAccuracy  float64                       `json:"model_accuracy" description:"Offline validation accuracy of the subject's model"`
}

type RuleSetView struct {
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	Default     bool       `json:"default" description:"Used when a request names no rule set"`
	Rules       []RuleView `json:"rules"`
}

type RuleView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Label       string   `json:"label"`
	WhenModel   []string `json:"when_model,omitempty"`
	Conditions  []string `json:"conditions"`
}
