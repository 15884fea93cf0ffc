package mcpadapter

import (
	"context"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/aretha12/MoGrow/internal/recommendation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Decider is satisfied by *executor.Executor.
type Decider interface {
	Decide(ctx context.Context, req models.DecisionRequest) (models.DecisionResult, error)
	Accuracy(subject models.Subject) float64
}

// ChildInput is the MCP tool input schema for child stunting screening.
type ChildInput struct {
	RequestID string                  `json:"request_id,omitempty" jsonschema:"optional request identifier"`
	RuleSet   string                  `json:"rule_set,omitempty" jsonschema:"optional rule set name (child-v1, child-v2, child-passthrough)"`
	Child     models.ChildObservation `json:"child" jsonschema:"child anthropometric observation"`
}

// MaternalInput is the MCP tool input schema for maternal risk screening.
type MaternalInput struct {
	RequestID string                     `json:"request_id,omitempty" jsonschema:"optional request identifier"`
	RuleSet   string                     `json:"rule_set,omitempty" jsonschema:"optional rule set name (maternal-passthrough, maternal-downgrade)"`
	Maternal  models.MaternalObservation `json:"maternal" jsonschema:"maternal vital signs"`
}

type DecideOutput struct {
	Decision       models.DecisionResult         `json:"decision"`
	Recommendation recommendation.Recommendation `json:"recommendation"`
	ModelAccuracy  float64                       `json:"model_accuracy"`
}

// NewDecideChildHandler returns a tool handler that uses the given decider.
// Pass the returned function to mcp.AddTool.
func NewDecideChildHandler(decider Decider) func(context.Context, *mcp.CallToolRequest, ChildInput) (*mcp.CallToolResult, DecideOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ChildInput) (*mcp.CallToolResult, DecideOutput, error) {
		child := input.Child
		return decide(ctx, decider, models.DecisionRequest{
			RequestID: input.RequestID,
			Subject:   models.SubjectChild,
			RuleSet:   input.RuleSet,
			Child:     &child,
		})
	}
}

// NewDecideMaternalHandler returns a tool handler that uses the given decider.
// Pass the returned function to mcp.AddTool.
func NewDecideMaternalHandler(decider Decider) func(context.Context, *mcp.CallToolRequest, MaternalInput) (*mcp.CallToolResult, DecideOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input MaternalInput) (*mcp.CallToolResult, DecideOutput, error) {
		maternal := input.Maternal
		return decide(ctx, decider, models.DecisionRequest{
			RequestID: input.RequestID,
			Subject:   models.SubjectMaternal,
			RuleSet:   input.RuleSet,
			Maternal:  &maternal,
		})
	}
}

func decide(ctx context.Context, decider Decider, req models.DecisionRequest) (*mcp.CallToolResult, DecideOutput, error) {
	result, err := decider.Decide(ctx, req)
	if err != nil {
		return nil, DecideOutput{}, err
	}

	advice, err := recommendation.For(result.Subject, result.FinalLabel)
	if err != nil {
		return nil, DecideOutput{}, err
	}

	return nil, DecideOutput{
		Decision:       result,
		Recommendation: advice,
		ModelAccuracy:  decider.Accuracy(result.Subject),
	}, nil
}

// NewServer registers the screening tools on a fresh MCP server.
func NewServer(decider Decider, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mogrow",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decide_child",
		Description: "Screen a child for stunting from age, sex, birth and current weight and length, and breastfeeding. Returns the label, the rule that fired if any, and advice.",
	}, NewDecideChildHandler(decider))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "decide_maternal",
		Description: "Screen a pregnant woman for low, medium or high risk from age, blood pressure, blood sugar, temperature and heart rate. Returns the label, the rule that fired if any, and advice.",
	}, NewDecideMaternalHandler(decider))

	return server
}
