package analyze

// EmotionWeights maps emotion labels to engagement contribution in [0, 1].
type EmotionWeights map[string]float64

// DefaultEmotionWeights returns the canonical label weights. Happiness and
// surprise read as engaged, sadness and fear as disengaged.
func DefaultEmotionWeights() EmotionWeights {
	return EmotionWeights{
		"happy":    1.0,
		"surprise": 0.9,
		"neutral":  0.6,
		"angry":    0.5,
		"disgust":  0.4,
		"fear":     0.3,
		"sad":      0.2,
	}
}

// EngagementFromEmotions computes a weighted engagement indicator from raw
// emotion scores. Labels missing from w contribute nothing. Returns 0.5 when
// no scored label carries weight.
func EngagementFromEmotions(scores map[string]float64, w EmotionWeights) float64 {
	var weighted, total float64
	for label, score := range scores {
		if score <= 0 {
			continue
		}
		weight, ok := w[label]
		if !ok {
			continue
		}
		weighted += score * weight
		total += score
	}
	if total == 0 {
		return 0.5
	}
	return weighted / total
}
