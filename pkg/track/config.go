package track

// Config holds the tunable parameters for the tracker.
type Config struct {
	// IoUThreshold is the minimum overlap to accept a track-detection match.
	IoUThreshold float64

	// MaxAge is the number of consecutive missed frames after which a
	// track is pruned. A track with Misses > MaxAge is removed.
	MaxAge int

	// HistoryLen bounds the per-track box history.
	HistoryLen int
}

// DefaultConfig returns the recommended tracker configuration.
func DefaultConfig() Config {
	return Config{
		IoUThreshold: 0.3,
		MaxAge:       30,
		HistoryLen:   30,
	}
}
