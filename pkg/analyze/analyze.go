// Package analyze defines the contracts for the external analysis
// collaborators the engagement pipeline consumes: person detection, facial
// emotion classification, pose estimation, scene description, and speech
// transcription. The pipeline only depends on these interfaces and their
// bounded observation values; model internals live behind them.
//
// Every collaborator may fail or return nothing. Callers treat both the same
// way: the modality is absent for that cycle and scoring falls back to
// neutral defaults.
package analyze

import (
	"context"

	"github.com/engageiq/go-engage/pkg/track"
)

// PersonDetector finds people in a frame.
type PersonDetector interface {
	// Detect returns one bounding box per person found in the JPEG image.
	Detect(ctx context.Context, jpeg []byte) ([]track.Box, error)

	// Close releases resources.
	Close() error
}

// EmotionClassifier scores facial emotions for one person in a frame.
type EmotionClassifier interface {
	Analyze(ctx context.Context, jpeg []byte, box track.Box) (*Emotion, error)
}

// PoseEstimator derives body-language signals for one person in a frame.
type PoseEstimator interface {
	Estimate(ctx context.Context, jpeg []byte, box track.Box) (*Pose, error)
}

// SceneDescriber produces a free-form text description of a frame, suitable
// for lexicon scoring.
type SceneDescriber interface {
	Describe(ctx context.Context, jpeg []byte) (string, error)
}

// SpeechTranscriber turns an audio chunk into text with sentiment.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio []byte, sampleRate int) (*Transcript, error)
}

// Emotion is a classifier result. Scores are per-label weights on an
// arbitrary but consistent scale (probabilities or percentages both work).
type Emotion struct {
	Scores     map[string]float64 `json:"scores"`
	Dominant   string             `json:"dominant"`
	Engagement float64            `json:"engagement_indicator"` // 0-1
}

// Pose is a pose-estimator result.
type Pose struct {
	// Posture is "forward", "backward", or "neutral".
	Posture     string  `json:"posture"`
	ArmsCrossed bool    `json:"arms_crossed"`
	ArmsRaised  bool    `json:"arms_raised"`
	Engagement  float64 `json:"engagement_indicator"` // 0-1
}

// Transcript is a speech-transcriber result.
type Transcript struct {
	Text string `json:"text"`

	// Sentiment is a compound polarity in [-1, 1].
	Sentiment float64 `json:"sentiment_score"`

	// Speaking reports whether voice activity was detected in the chunk.
	Speaking bool `json:"is_speaking"`
}
