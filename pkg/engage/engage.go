// Package engage fuses per-modality observations into bounded engagement
// scores: one per tracked person, aggregated into one per room. The scorer is
// stateless and safe to share across sessions.
//
// Every modality input is optional. A missing modality contributes a neutral
// 0.5 component rather than an error, so a person with only a bounding box
// still gets a score.
package engage

import (
	"strings"
	"time"

	"github.com/engageiq/go-engage/pkg/analyze"
	"github.com/engageiq/go-engage/pkg/scene"
	"github.com/engageiq/go-engage/pkg/track"
)

// Component defaults and thresholds.
const (
	neutralComponent = 0.5

	bodyOpenScore   = 0.75
	bodyClosedScore = 0.35

	participationSpeaking = 0.8
	participationSilent   = 0.3

	highlyEngagedThreshold = 0.7
	disengagedThreshold    = 0.4
	activeConfidence       = 0.5
)

// speechKeywords are the words that read as engaged speech.
var speechKeywords = []string{
	"agree", "yes", "understand", "great", "excellent",
	"interesting", "question", "think", "believe",
}

// PersonInput carries everything known about one person this cycle. Every
// field may be nil or zero.
type PersonInput struct {
	Context    *scene.Observation
	Emotion    *analyze.Emotion
	Speech     *analyze.Transcript
	Pose       *analyze.Pose
	Box        *track.Box
	Confidence float64
}

// ComponentScores holds the five named components, each in [0, 1].
type ComponentScores struct {
	Context       float64 `json:"context"`
	Emotion       float64 `json:"emotion"`
	BodyLanguage  float64 `json:"body_language"`
	Speech        float64 `json:"speech"`
	Participation float64 `json:"participation"`
}

// Details are raw modality snapshots carried for display only. They never
// feed back into scoring.
type Details struct {
	DominantEmotion   string   `json:"dominant_emotion,omitempty"`
	DominantSentiment string   `json:"dominant_sentiment,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	Posture           string   `json:"posture,omitempty"`
	IsSpeaking        bool     `json:"is_speaking"`
	Transcript        string   `json:"transcript,omitempty"`
}

// PersonEngagement is one person's fused score for one cycle.
type PersonEngagement struct {
	PersonID   int             `json:"person_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Overall    float64         `json:"overall_score"`
	Components ComponentScores `json:"component_scores"`
	Details    Details         `json:"details"`
	Confidence float64         `json:"confidence"`
	Box        *track.Box      `json:"bbox,omitempty"`
}

// Scorer fuses modality observations using a fixed weight profile.
type Scorer struct {
	weights Weights
	now     func() time.Time
}

// New returns a Scorer using the given weights, normalized.
func New(w Weights) *Scorer {
	return &Scorer{weights: w.Normalize(), now: time.Now}
}

// Weights returns the normalized profile in use.
func (s *Scorer) Weights() Weights { return s.weights }

// ScorePerson fuses the available observations for one person. Total: never
// fails, any combination of absent modalities yields a valid bounded score.
func (s *Scorer) ScorePerson(id int, in PersonInput) PersonEngagement {
	c := ComponentScores{
		Context:       neutralComponent,
		Emotion:       neutralComponent,
		BodyLanguage:  neutralComponent,
		Speech:        neutralComponent,
		Participation: neutralComponent,
	}
	var d Details

	if in.Context != nil {
		c.Context = in.Context.Score
		c.BodyLanguage = bodyLanguage(in.Context, in.Pose, &d)
		d.DominantSentiment = string(in.Context.Sentiment)
		d.Keywords = in.Context.Keywords()
	} else if in.Pose != nil {
		c.BodyLanguage = clamp01(in.Pose.Engagement)
		d.Posture = in.Pose.Posture
	}

	if in.Emotion != nil {
		c.Emotion = clamp01(in.Emotion.Engagement)
		d.DominantEmotion = in.Emotion.Dominant
	}

	if in.Speech != nil {
		c.Speech = speechScore(in.Speech)
		if in.Speech.Speaking {
			c.Participation = participationSpeaking
		} else {
			c.Participation = participationSilent
		}
		d.IsSpeaking = in.Speech.Speaking
		d.Transcript = in.Speech.Text
	}

	w := s.weights
	overall := c.Context*w.Context +
		c.Emotion*w.Emotion +
		c.BodyLanguage*w.BodyLanguage +
		c.Speech*w.Speech +
		c.Participation*w.Participation

	return PersonEngagement{
		PersonID:   id,
		Timestamp:  s.now(),
		Overall:    clamp01(overall),
		Components: c,
		Details:    d,
		Confidence: clamp01(in.Confidence),
		Box:        in.Box,
	}
}

// bodyLanguage picks the body component from context posture cues, falling
// back to the pose estimate when the description carries no cue. Open posture
// wins when both flags are somehow set.
func bodyLanguage(obs *scene.Observation, pose *analyze.Pose, d *Details) float64 {
	switch {
	case obs.HasOpenPosture():
		return bodyOpenScore
	case obs.HasClosedPosture():
		return bodyClosedScore
	case pose != nil:
		d.Posture = pose.Posture
		return clamp01(pose.Engagement)
	default:
		return neutralComponent
	}
}

// speechScore turns a transcript into a bounded speech component. Strong
// sentiment in either direction reads as engagement; negative reaction counts
// for less than positive.
func speechScore(t *analyze.Transcript) float64 {
	score := 0.5

	switch {
	case t.Sentiment > 0.05:
		score += t.Sentiment * 0.2
	case t.Sentiment < -0.05:
		score += -t.Sentiment * 0.1
	}

	words := len(strings.Fields(t.Text))
	switch {
	case words > 20:
		score += 0.15
	case words > 10:
		score += 0.1
	}

	lower := strings.ToLower(t.Text)
	for _, kw := range speechKeywords {
		if strings.Contains(lower, kw) {
			score += 0.05
		}
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
