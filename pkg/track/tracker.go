package track

import (
	"sort"

	hungarian "github.com/arthurkushman/go-hungarian"
)

// Tracker maintains the track registry for one session. It is not safe for
// concurrent use; each connection owns its own instance.
type Tracker struct {
	cfg    Config
	tracks map[int]*Track
	nextID int
}

// New creates a tracker with the given configuration.
func New(cfg Config) *Tracker {
	if cfg.HistoryLen <= 0 {
		cfg.HistoryLen = DefaultConfig().HistoryLen
	}
	return &Tracker{
		cfg:    cfg,
		tracks: make(map[int]*Track),
		nextID: 1,
	}
}

// Update matches the frame's detections against known tracks and returns all
// tracks, matched or not, sorted by ascending ID. Matching maximizes total
// IoU over a one-to-one assignment; pairs below the IoU threshold are
// rejected and spawn new tracks instead. Tracks missed for more than MaxAge
// consecutive frames are pruned. The result is deterministic for identical
// inputs.
func (t *Tracker) Update(detections []Box) []*Track {
	for _, tr := range t.tracks {
		tr.Misses++
	}

	if len(detections) == 0 {
		t.prune()
		return t.sorted()
	}

	if len(t.tracks) == 0 {
		for _, det := range detections {
			t.spawn(det)
		}
		return t.sorted()
	}

	ids := t.ids()
	matched := t.assign(ids, detections)

	for j, det := range detections {
		if _, ok := matched[j]; !ok {
			t.spawn(det)
		}
	}

	t.prune()
	return t.sorted()
}

// assign solves the optimal assignment over the IoU matrix and applies
// accepted matches. It returns the set of matched detection indices.
func (t *Tracker) assign(ids []int, detections []Box) map[int]struct{} {
	// The solver wants a square matrix; pad with zero IoU. Padded pairs can
	// never be accepted since the threshold is positive.
	n := max(len(ids), len(detections))
	iou := make([][]float64, n)
	for i := range iou {
		iou[i] = make([]float64, n)
	}
	for i, id := range ids {
		for j, det := range detections {
			iou[i][j] = IoU(t.tracks[id].Box, det)
		}
	}

	matched := make(map[int]struct{})
	for i, cols := range hungarian.SolveMax(iou) {
		if i >= len(ids) {
			continue
		}
		for j := range cols {
			if j >= len(detections) {
				continue
			}
			if iou[i][j] >= t.cfg.IoUThreshold {
				t.tracks[ids[i]].update(detections[j])
				matched[j] = struct{}{}
			}
		}
	}
	return matched
}

func (t *Tracker) spawn(box Box) *Track {
	tr := newTrack(t.nextID, box, t.cfg.HistoryLen)
	t.tracks[tr.ID] = tr
	t.nextID++
	return tr
}

func (t *Tracker) prune() {
	for id, tr := range t.tracks {
		if tr.Misses > t.cfg.MaxAge {
			delete(t.tracks, id)
		}
	}
}

// ids returns the registered track IDs in ascending order.
func (t *Tracker) ids() []int {
	ids := make([]int, 0, len(t.tracks))
	for id := range t.tracks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (t *Tracker) sorted() []*Track {
	out := make([]*Track, 0, len(t.tracks))
	for _, id := range t.ids() {
		out = append(out, t.tracks[id])
	}
	return out
}

// Active returns the tracks matched in the most recent update, by ascending ID.
func (t *Tracker) Active() []*Track {
	var out []*Track
	for _, tr := range t.sorted() {
		if tr.Active() {
			out = append(out, tr)
		}
	}
	return out
}

// Get returns the track with the given ID, or nil.
func (t *Tracker) Get(id int) *Track {
	return t.tracks[id]
}

// Len returns the number of registered tracks.
func (t *Tracker) Len() int {
	return len(t.tracks)
}

// Reset clears the registry. Track IDs keep increasing from where they were;
// identities are never reissued within a session.
func (t *Tracker) Reset() {
	t.tracks = make(map[int]*Track)
}
