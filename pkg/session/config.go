package session

import (
	"time"

	"github.com/engageiq/go-engage/pkg/track"
)

// Modalities selects which analysis channels a session runs. A disabled
// modality is simply absent from scoring; it falls back to neutral defaults.
type Modalities struct {
	Scene   bool
	Emotion bool
	Pose    bool
	Speech  bool
}

// Config controls one session's pipeline.
type Config struct {
	// Tracker configures the per-session person tracker.
	Tracker track.Config

	// Modalities selects the active analysis channels.
	Modalities Modalities

	// NotifyInterval is the minimum spacing between webhook deliveries.
	NotifyInterval time.Duration

	// NotifyTimeout bounds one webhook delivery attempt.
	NotifyTimeout time.Duration
}

// DefaultConfig returns the standard session configuration with all
// modalities enabled.
func DefaultConfig() Config {
	return Config{
		Tracker: track.DefaultConfig(),
		Modalities: Modalities{
			Scene:   true,
			Emotion: true,
			Pose:    true,
			Speech:  true,
		},
		NotifyInterval: 10 * time.Second,
		NotifyTimeout:  5 * time.Second,
	}
}
