package api

import (
	"github.com/aretha12/MoGrow/internal/api/middleware"
	"github.com/aretha12/MoGrow/internal/models"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const APIDocsPath = "/apidocs.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/decide").
			To(handler.Decide).
			Doc("Screen a child or maternal observation").
			Metadata(restfulspec.KeyOpenAPITags, []string{"decide"}).
			Reads(models.DecisionRequest{}).
			Writes(DecisionResponse{}).
			Returns(200, "OK", DecisionResponse{}).
			Returns(400, "Invalid Input", middleware.ErrorResponse{}).
			Returns(404, "Rule Set Not Found", middleware.ErrorResponse{}).
			Returns(502, "Unrecognized Model Label", middleware.ErrorResponse{}).
			Returns(503, "Model Unavailable", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/overlay").
			To(handler.Overlay).
			Doc("Apply a rule set to a known model label").
			Metadata(restfulspec.KeyOpenAPITags, []string{"decide"}).
			Reads(models.OverlayRequest{}).
			Writes(models.DecisionResult{}).
			Returns(200, "OK", models.DecisionResult{}).
			Returns(400, "Invalid Input", middleware.ErrorResponse{}).
			Returns(404, "Rule Set Not Found", middleware.ErrorResponse{}).
			Returns(502, "Unrecognized Model Label", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/rule-sets").
			To(handler.RuleSets).
			Doc("List configured rule sets").
			Metadata(restfulspec.KeyOpenAPITags, []string{"rules"}).
			Param(ws.QueryParameter("subject", "Filter by subject (child, maternal)").DataType("string").Required(false)).
			Writes([]RuleSetView{}).
			Returns(200, "OK", []RuleSetView{}))

	container.Add(ws)

	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       APIDocsPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

// RegisterMetrics exposes the gatherer on /metrics, outside the API filters.
func RegisterMetrics(container *restful.Container, gatherer prometheus.Gatherer) {
	container.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "MoGrow",
			Description: "Child stunting and maternal risk screening",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "decide", Description: "Screening decisions"}},
		{TagProps: spec.TagProps{Name: "rules", Description: "Rule overlay configuration"}},
		{TagProps: spec.TagProps{Name: "health", Description: "Service health"}},
	}
}
