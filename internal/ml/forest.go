package ml

import (
	"errors"
	"fmt"
)

// RandomForest predicts the majority vote of its trees. Ties go to the
// smallest class label.
type RandomForest struct {
	NFeatures int            `json:"n_features"`
	Trees     []DecisionTree `json:"trees"`
}

func (rf *RandomForest) Predict(features []float64) (int, error) {
	if len(rf.Trees) == 0 {
		return 0, errors.New("model not loaded")
	}

	votes := make(map[int]int)
	for i := range rf.Trees {
		label, err := rf.Trees[i].Predict(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		votes[label]++
	}

	best, bestCount := 0, -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best, nil
}

func (rf *RandomForest) validate() error {
	if len(rf.Trees) == 0 {
		return errors.New("forest: no trees")
	}
	for i := range rf.Trees {
		tree := &rf.Trees[i]
		if tree.NFeatures == 0 {
			tree.NFeatures = rf.NFeatures
		}
		if tree.NFeatures != rf.NFeatures {
			return fmt.Errorf("forest: tree %d expects %d features, forest has %d", i, tree.NFeatures, rf.NFeatures)
		}
		if err := tree.validate(); err != nil {
			return fmt.Errorf("forest: tree %d: %w", i, err)
		}
	}
	return nil
}
