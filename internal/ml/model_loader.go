package ml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretha12/MoGrow/internal/models"
)

// LoadClassifier reads a JSON model artifact. Any failure is reported as
// models.ErrModelUnavailable.
func LoadClassifier(modelType, path string) (Classifier, error) {
	classifier, err := loadClassifier(modelType, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s model %s: %v", models.ErrModelUnavailable, modelType, path, err)
	}
	return classifier, nil
}

func loadClassifier(modelType, path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch modelType {
	case "decision_tree":
		var tree DecisionTree
		if err := json.Unmarshal(payload, &tree); err != nil {
			return nil, err
		}
		if err := tree.validate(); err != nil {
			return nil, err
		}
		return &tree, nil
	case "random_forest":
		var forest RandomForest
		if err := json.Unmarshal(payload, &forest); err != nil {
			return nil, err
		}
		if err := forest.validate(); err != nil {
			return nil, err
		}
		return &forest, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", modelType)
	}
}
