package track

// Track is one person followed across frames. Tracks are owned by a single
// Tracker and must not be shared between sessions.
type Track struct {
	// ID is the track identity. IDs increase monotonically within a
	// Tracker and are never reused, even after the track is pruned.
	ID int `json:"track_id"`

	// Box is the most recent matched detection.
	Box Box `json:"bbox"`

	// History holds the last HistoryLen matched boxes, oldest first.
	History []Box `json:"-"`

	// Misses counts consecutive frames without a matching detection.
	Misses int `json:"frames_since_update"`

	// Frames counts total frames this track was matched in.
	Frames int `json:"total_frames_seen"`

	historyLen int
}

func newTrack(id int, box Box, historyLen int) *Track {
	t := &Track{
		ID:         id,
		Box:        box,
		History:    make([]Box, 0, historyLen),
		Frames:     1,
		historyLen: historyLen,
	}
	t.History = append(t.History, box)
	return t
}

// update records a matched detection, resetting the miss counter.
func (t *Track) update(box Box) {
	t.Box = box
	t.History = append(t.History, box)
	if len(t.History) > t.historyLen {
		t.History = t.History[1:]
	}
	t.Misses = 0
	t.Frames++
}

// Active reports whether the track was matched in the most recent update.
func (t *Track) Active() bool {
	return t.Misses == 0
}
