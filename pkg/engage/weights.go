package engage

import (
	"fmt"
	"strconv"
	"strings"
)

// Weights is the per-component contribution profile of the fused score.
// Weights are relative; Normalize scales them to sum to 1.
type Weights struct {
	Context       float64 `json:"context"`
	Emotion       float64 `json:"emotion"`
	BodyLanguage  float64 `json:"body_language"`
	Speech        float64 `json:"speech"`
	Participation float64 `json:"participation"`
}

// DefaultWeights returns the standard profile. Context dominates because the
// scene description is the richest signal.
func DefaultWeights() Weights {
	return Weights{
		Context:       0.35,
		Emotion:       0.25,
		BodyLanguage:  0.15,
		Speech:        0.15,
		Participation: 0.10,
	}
}

func (w Weights) sum() float64 {
	return w.Context + w.Emotion + w.BodyLanguage + w.Speech + w.Participation
}

// Normalize returns w scaled to sum to 1. A non-positive sum falls back to
// the defaults.
func (w Weights) Normalize() Weights {
	s := w.sum()
	if s <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Context:       w.Context / s,
		Emotion:       w.Emotion / s,
		BodyLanguage:  w.BodyLanguage / s,
		Speech:        w.Speech / s,
		Participation: w.Participation / s,
	}
}

// ParseWeights parses "context,emotion,body,speech,participation" as five
// comma-separated floats. An empty string returns the defaults. The result is
// normalized.
func ParseWeights(s string) (Weights, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultWeights(), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return Weights{}, fmt.Errorf("weights: expected 5 values, got %d", len(parts))
	}

	vals := make([]float64, 5)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("weights: value %d: %w", i+1, err)
		}
		if v < 0 {
			return Weights{}, fmt.Errorf("weights: value %d is negative", i+1)
		}
		vals[i] = v
	}

	w := Weights{
		Context:       vals[0],
		Emotion:       vals[1],
		BodyLanguage:  vals[2],
		Speech:        vals[3],
		Participation: vals[4],
	}
	if w.sum() <= 0 {
		return Weights{}, fmt.Errorf("weights: all values are zero")
	}
	return w.Normalize(), nil
}
