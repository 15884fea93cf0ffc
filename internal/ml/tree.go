package ml

import (
	"errors"
	"fmt"
)

type Classifier interface {
	Predict(features []float64) (int, error)
}

// TreeNode is one entry of a flattened tree. Children always come after
// their parent in the node slice.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type DecisionTree struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

func (dt *DecisionTree) Predict(features []float64) (int, error) {
	if len(dt.Nodes) == 0 {
		return 0, errors.New("model not loaded")
	}
	if len(features) != dt.NFeatures {
		return 0, fmt.Errorf("expected %d features, got %d", dt.NFeatures, len(features))
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (dt *DecisionTree) validate() error {
	if dt.NFeatures <= 0 {
		return errors.New("tree: n_features must be positive")
	}
	if len(dt.Nodes) == 0 {
		return errors.New("tree: no nodes")
	}
	for i, node := range dt.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= dt.NFeatures {
			return fmt.Errorf("tree: node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(dt.Nodes) {
				return fmt.Errorf("tree: node %d: invalid child %d", i, child)
			}
		}
	}
	return nil
}
