// Package scene turns free-form scene or speech descriptions into bounded
// engagement indicators by deterministic lexicon matching. Parse is a pure
// function: no model calls, no state, identical output for identical input.
package scene

import "strings"

// Sentiment classifies the dominant keyword category of a description.
type Sentiment string

// Sentiment values.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Scoring constants. These are part of the contract, not tuning knobs.
const (
	baseScore = 0.5

	keywordStep = 0.08 // per positive/negative keyword
	keywordCap  = 0.4

	postureAdjust = 0.15 // open adds, closed subtracts
	gestureBonus  = 0.15

	emotionStep            = 0.08 // per positive emotion word
	emotionCap             = 0.25
	negativeEmotionPenalty = 0.15

	neutralStep = 0.02 // per neutral keyword
	neutralCap  = 0.05

	// negationWindow is how many characters before a positive keyword are
	// scanned for a negation token.
	negationWindow = 30
)

// Observation is the immutable result of parsing one description.
type Observation struct {
	Text string `json:"text,omitempty"`

	// Matched keyword sets, in lexicon order. A phrase appears at most once.
	Positive []string `json:"positive"`
	Neutral  []string `json:"neutral"`
	Negative []string `json:"negative"`

	OpenPosture    []string `json:"open_posture"`
	ClosedPosture  []string `json:"closed_posture"`
	ActiveGestures []string `json:"active_gestures"`

	PositiveEmotions []string `json:"positive_emotions"`
	NegativeEmotions []string `json:"negative_emotions"`
	NeutralEmotions  []string `json:"neutral_emotions"`

	// Score is the contextual engagement score in [0, 1].
	Score float64 `json:"contextual_score"`

	// Sentiment is the dominant keyword category; ties resolve to neutral.
	Sentiment Sentiment `json:"dominant_sentiment"`
}

// HasOpenPosture reports whether any open-posture phrase matched.
func (o Observation) HasOpenPosture() bool { return len(o.OpenPosture) > 0 }

// HasClosedPosture reports whether any closed-posture phrase matched.
func (o Observation) HasClosedPosture() bool { return len(o.ClosedPosture) > 0 }

// HasActiveGestures reports whether any active-gesture phrase matched.
func (o Observation) HasActiveGestures() bool { return len(o.ActiveGestures) > 0 }

// Keywords returns all matched engagement keywords for display, positive
// first, then neutral, then negative.
func (o Observation) Keywords() []string {
	out := make([]string, 0, len(o.Positive)+len(o.Neutral)+len(o.Negative))
	out = append(out, o.Positive...)
	out = append(out, o.Neutral...)
	out = append(out, o.Negative...)
	return out
}

// Neutral returns the canonical observation for empty input: score 0.5,
// neutral sentiment, no matches.
func Neutral() Observation {
	return Observation{Score: baseScore, Sentiment: SentimentNeutral}
}

// Parse scans the text against the fixed lexicons and returns a scored
// observation. Empty text returns Neutral(). Parse never fails.
func Parse(text string) Observation {
	if text == "" {
		return Neutral()
	}

	lower := strings.ToLower(text)

	obs := Observation{
		Text:             text,
		Positive:         matchNegated(lower, positiveKeywords),
		Neutral:          match(lower, neutralKeywords),
		Negative:         match(lower, negativeKeywords),
		OpenPosture:      match(lower, openPosturePhrases),
		ClosedPosture:    match(lower, closedPosturePhrases),
		ActiveGestures:   match(lower, activeGesturePhrases),
		PositiveEmotions: match(lower, positiveEmotionWords),
		NegativeEmotions: match(lower, negativeEmotionWords),
		NeutralEmotions:  match(lower, neutralEmotionWords),
	}

	obs.Score = score(obs)
	obs.Sentiment = dominant(len(obs.Positive), len(obs.Neutral), len(obs.Negative))
	return obs
}

// match returns the lexicon phrases contained in text, in lexicon order.
func match(text string, lexicon []string) []string {
	var found []string
	for _, phrase := range lexicon {
		if strings.Contains(text, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

// matchNegated is match with negation suppression: a phrase is skipped when
// a negation token appears within negationWindow characters before its first
// occurrence ("not engaged" does not count as engaged).
func matchNegated(text string, lexicon []string) []string {
	var found []string
	for _, phrase := range lexicon {
		idx := strings.Index(text, phrase)
		if idx < 0 {
			continue
		}
		if negated(text, idx) {
			continue
		}
		found = append(found, phrase)
	}
	return found
}

func negated(text string, idx int) bool {
	start := max(0, idx-negationWindow)
	window := text[start:idx]
	for _, tok := range negationTokens {
		if strings.Contains(window, tok) {
			return true
		}
	}
	return false
}

// score applies the additive adjustments with their independent caps and
// clamps the result to [0, 1].
func score(o Observation) float64 {
	s := baseScore

	s += min(keywordCap, float64(len(o.Positive))*keywordStep)
	s -= min(keywordCap, float64(len(o.Negative))*keywordStep)

	if o.HasOpenPosture() {
		s += postureAdjust
	}
	if o.HasClosedPosture() {
		s -= postureAdjust
	}
	if o.HasActiveGestures() {
		s += gestureBonus
	}

	if n := len(o.PositiveEmotions); n > 0 {
		s += min(emotionCap, float64(n)*emotionStep)
	}
	if len(o.NegativeEmotions) > 0 {
		s -= negativeEmotionPenalty
	}

	s += min(neutralCap, float64(len(o.Neutral))*neutralStep)

	return min(1, max(0, s))
}

// dominant picks the category with the strictly greatest count; any tie
// resolves to neutral.
func dominant(pos, neu, neg int) Sentiment {
	switch {
	case pos > neg && pos > neu:
		return SentimentPositive
	case neg > pos && neg > neu:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
