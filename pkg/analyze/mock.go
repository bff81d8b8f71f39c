package analyze

import (
	"context"
	"sync"

	"github.com/engageiq/go-engage/pkg/track"
)

// MockDetector implements PersonDetector for testing.
// All methods can be customized via function fields.
type MockDetector struct {
	// DetectFunc is called when Detect is invoked.
	// If nil, returns a single centered box.
	DetectFunc func(ctx context.Context, jpeg []byte) ([]track.Box, error)

	// CloseFunc is called when Close is invoked. If nil, returns nil.
	CloseFunc func() error

	mu    sync.Mutex
	calls int
}

// Detect calls DetectFunc and counts the call.
func (m *MockDetector) Detect(ctx context.Context, jpeg []byte) ([]track.Box, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, jpeg)
	}
	return []track.Box{{X1: 100, Y1: 100, X2: 300, Y2: 400, Confidence: 0.9}}, nil
}

// Close calls CloseFunc.
func (m *MockDetector) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns how many times Detect was invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockEmotion implements EmotionClassifier for testing.
type MockEmotion struct {
	// AnalyzeFunc is called when Analyze is invoked.
	// If nil, returns a mildly happy result.
	AnalyzeFunc func(ctx context.Context, jpeg []byte, box track.Box) (*Emotion, error)
}

func (m *MockEmotion) Analyze(ctx context.Context, jpeg []byte, box track.Box) (*Emotion, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, jpeg, box)
	}
	scores := map[string]float64{"happy": 0.6, "neutral": 0.4}
	return &Emotion{
		Scores:     scores,
		Dominant:   "happy",
		Engagement: EngagementFromEmotions(scores, DefaultEmotionWeights()),
	}, nil
}

// MockPose implements PoseEstimator for testing.
type MockPose struct {
	// EstimateFunc is called when Estimate is invoked.
	// If nil, returns a neutral upright pose.
	EstimateFunc func(ctx context.Context, jpeg []byte, box track.Box) (*Pose, error)
}

func (m *MockPose) Estimate(ctx context.Context, jpeg []byte, box track.Box) (*Pose, error) {
	if m.EstimateFunc != nil {
		return m.EstimateFunc(ctx, jpeg, box)
	}
	return &Pose{Posture: "neutral", Engagement: 0.5}, nil
}

// MockScene implements SceneDescriber for testing.
type MockScene struct {
	// DescribeFunc is called when Describe is invoked.
	// If nil, returns an empty description.
	DescribeFunc func(ctx context.Context, jpeg []byte) (string, error)
}

func (m *MockScene) Describe(ctx context.Context, jpeg []byte) (string, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, jpeg)
	}
	return "", nil
}

// MockTranscriber implements SpeechTranscriber for testing.
type MockTranscriber struct {
	// TranscribeFunc is called when Transcribe is invoked.
	// If nil, returns an empty, non-speaking transcript.
	TranscribeFunc func(ctx context.Context, audio []byte, sampleRate int) (*Transcript, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, sampleRate int) (*Transcript, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, sampleRate)
	}
	return &Transcript{}, nil
}

// Compile-time interface checks.
var (
	_ PersonDetector    = (*MockDetector)(nil)
	_ EmotionClassifier = (*MockEmotion)(nil)
	_ PoseEstimator     = (*MockPose)(nil)
	_ SceneDescriber    = (*MockScene)(nil)
	_ SpeechTranscriber = (*MockTranscriber)(nil)
)
